package routes

import (
	"net/http"
	"time"

	"lagoona/internal/auth"
	"lagoona/internal/availability"
	"lagoona/internal/bookings"
	"lagoona/internal/holds"
	"lagoona/internal/notifications"
	"lagoona/internal/packages"
	"lagoona/internal/safaris"
	"lagoona/internal/shared/config"
	"lagoona/internal/shared/database"
	"lagoona/internal/shared/middleware"
	"lagoona/internal/villas"
	"lagoona/pkg/cache"
	"lagoona/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router wires every domain onto the gin engine
type Router struct {
	cfg        *config.Config
	db         *database.DB
	notifier   *notifications.Service
	limiter    *ratelimit.Limiter
	holdEngine *holds.Engine
}

func NewRouter(cfg *config.Config, db *database.DB, notifier *notifications.Service, limiter *ratelimit.Limiter, holdEngine *holds.Engine) *Router {
	return &Router{
		cfg:        cfg,
		db:         db,
		notifier:   notifier,
		limiter:    limiter,
		holdEngine: holdEngine,
	}
}

// Setup mounts health endpoints and every versioned API route
func (r *Router) Setup(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.cfg.GetAPIBasePath())

	// Repositories
	authRepo := auth.NewRepository(r.db.PostgreSQL)
	villaRepo := villas.NewRepository(r.db.PostgreSQL)
	packageRepo := packages.NewRepository(r.db.PostgreSQL)
	safariRepo := safaris.NewRepository(r.db.PostgreSQL)
	availabilityRepo := availability.NewRepository(r.db.PostgreSQL)
	bookingRepo := bookings.NewRepository(r.db.PostgreSQL)

	// Services
	cacheService := cache.NewService(r.db.Redis, r.cfg.Redis.CacheTTL)
	authService := auth.NewService(authRepo, r.cfg.JWT)
	villaService := villas.NewService(villaRepo, cacheService, r.cfg.Redis.CacheTTL)
	packageService := packages.NewService(packageRepo)
	safariService := safaris.NewService(safariRepo, r.notifier)
	availabilityService := availability.NewService(availabilityRepo, villaRepo)
	holdService := holds.NewService(r.holdEngine, availabilityService, r.cfg.Redis.HoldTTL)
	bookingService := bookings.NewService(
		bookingRepo,
		villaRepo,
		villaService,
		packageRepo,
		safariRepo,
		holdService,
		r.notifier,
		r.cfg.Booking,
	)

	// Middleware
	authMW := middleware.JWTAuth(authService)
	adminMW := middleware.RequireStaff()

	// Route-class rate limits
	publicGroup := api.Group("", ratelimit.Middleware(r.limiter, ratelimit.TypePublic))
	authGroup := api.Group("", ratelimit.Middleware(r.limiter, ratelimit.TypeAuth))
	bookingGroup := api.Group("", ratelimit.Middleware(r.limiter, ratelimit.TypeBooking))

	auth.RegisterRoutes(authGroup, auth.NewController(authService), authMW)
	villas.RegisterRoutes(publicGroup, villas.NewController(villaService), authMW, adminMW)
	packages.RegisterRoutes(publicGroup, packages.NewController(packageService), authMW, adminMW)
	safaris.RegisterRoutes(publicGroup, safaris.NewController(safariService), authMW, adminMW)
	availability.RegisterRoutes(publicGroup, availability.NewController(availabilityService))
	holds.RegisterRoutes(bookingGroup, holds.NewController(holdService))
	bookings.RegisterRoutes(bookingGroup, bookings.NewController(bookingService), authMW, adminMW)
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	health := engine.Group("", ratelimit.Middleware(r.limiter, ratelimit.TypeHealth))

	health.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	health.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	health.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "lagoona",
			"version": r.cfg.APIVersion,
			"mode":    r.cfg.GinMode,
		})
	})
}

package holds

import (
	"errors"
	"net/http"

	"lagoona/internal/shared/utils/dates"
	"lagoona/internal/shared/utils/response"
	"lagoona/internal/villas"
	"lagoona/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{service: service, log: logger.GetDefault()}
}

// Create takes an advisory hold for a villa and stay window
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	fields := map[string]string{}
	checkIn, err := dates.Parse(req.CheckIn)
	if err != nil {
		fields["check_in"] = "must be a valid YYYY-MM-DD date"
	}
	checkOut, err := dates.Parse(req.CheckOut)
	if err != nil {
		fields["check_out"] = "must be a valid YYYY-MM-DD date"
	}
	if len(fields) == 0 {
		if !checkIn.Before(checkOut) {
			fields["check_out"] = "must be after check_in"
		}
		if checkIn.Before(dates.Today()) {
			fields["check_in"] = "must not be in the past"
		}
	}
	if len(fields) > 0 {
		response.ValidationFailed(c, fields)
		return
	}

	hold, err := ctrl.service.CreateHold(c.Request.Context(), req.VillaSlug, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, villas.ErrVillaNotFound):
			response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
		case errors.Is(err, ErrHoldConflict):
			response.Error(c, http.StatusConflict, "No units available to hold for these dates", "HOLD_CONFLICT")
		default:
			ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
			response.StoreUnavailable(c)
		}
		return
	}
	response.Created(c, "Hold acquired", hold)
}

// Get returns a live hold by id
func (ctrl *Controller) Get(c *gin.Context) {
	hold, err := ctrl.service.GetHold(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrHoldNotFound) {
			response.Error(c, http.StatusNotFound, "Hold not found or expired", "HOLD_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Hold retrieved", hold)
}

// Release drops a hold before its TTL lapses
func (ctrl *Controller) Release(c *gin.Context) {
	if err := ctrl.service.ReleaseHold(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrHoldNotFound) {
			response.Error(c, http.StatusNotFound, "Hold not found or expired", "HOLD_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Hold released", nil)
}

package main

import (
	"errors"
	"os"
	"time"

	"lagoona/internal/packages"
	"lagoona/internal/safaris"
	"lagoona/internal/shared/config"
	"lagoona/internal/shared/database"
	"lagoona/internal/users"
	"lagoona/internal/villas"
	"lagoona/pkg/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()
	logger.SetDefault(log)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Error("failed to initialize databases", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	pg := db.PostgreSQL

	if err := seedAdmin(pg); err != nil {
		log.Error("failed to seed admin user", "error", err.Error())
		os.Exit(1)
	}
	if err := seedVillas(pg); err != nil {
		log.Error("failed to seed villas", "error", err.Error())
		os.Exit(1)
	}
	if err := seedPackages(pg); err != nil {
		log.Error("failed to seed packages", "error", err.Error())
		os.Exit(1)
	}
	if err := seedSafaris(pg); err != nil {
		log.Error("failed to seed safari tours", "error", err.Error())
		os.Exit(1)
	}
	if err := seedPricing(pg); err != nil {
		log.Error("failed to seed pricing", "error", err.Error())
		os.Exit(1)
	}

	log.Info("seed complete")
}

func seedAdmin(db *gorm.DB) error {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-immediately"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := users.User{
		Name:     "Resort Admin",
		Email:    "admin@lagoona.resort",
		Password: string(hashed),
		Role:     users.RoleAdmin,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admin).Error
}

func seedVillas(db *gorm.DB) error {
	catalog := []villas.Villa{
		{
			Slug:        "glass-cottage",
			Name:        "Glass Cottage",
			Description: "A single glass-walled cottage over the backwater, one of a kind.",
			BasePrice:   15000,
			MaxGuests:   2,
			TotalUnits:  1,
			Active:      true,
			Amenities:   []string{"air conditioning", "private deck", "panoramic glass walls"},
		},
		{
			Slug:        "lagoon-villa",
			Name:        "Lagoon Villa",
			Description: "Spacious lagoon-facing villas with private plunge pools.",
			BasePrice:   22000,
			MaxGuests:   4,
			TotalUnits:  4,
			Active:      true,
			Amenities:   []string{"plunge pool", "air conditioning", "lagoon view"},
		},
		{
			Slug:        "forest-cabin",
			Name:        "Forest Cabin",
			Description: "Timber cabins set back into the reserve forest.",
			BasePrice:   10000,
			MaxGuests:   3,
			TotalUnits:  6,
			Active:      true,
			Amenities:   []string{"fireplace", "forest view"},
		},
	}

	for i := range catalog {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&catalog[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedPackages(db *gorm.DB) error {
	catalog := []packages.Package{
		{
			Slug:          "full-board",
			Name:          "Full Board",
			Description:   "All meals at the lakeside restaurant.",
			PricePerNight: 2000,
			Active:        true,
		},
		{
			Slug:          "half-board",
			Name:          "Half Board",
			Description:   "Breakfast and dinner.",
			PricePerNight: 1200,
			Active:        true,
		},
	}

	for i := range catalog {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&catalog[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedSafaris(db *gorm.DB) error {
	catalog := []safaris.Tour{
		{
			Slug:        "backwater-safari",
			Name:        "Backwater Safari",
			Description: "Sunrise boat safari through the backwater channels.",
			Price:       3000,
			DurationHrs: 3,
			Active:      true,
		},
		{
			Slug:        "night-safari",
			Name:        "Night Safari",
			Description: "Guided night drive through the reserve.",
			Price:       4500,
			DurationHrs: 4,
			Active:      true,
		},
	}

	for i := range catalog {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&catalog[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedPricing(db *gorm.DB) error {
	year := time.Now().UTC().Year()

	rules := []villas.PricingRule{
		{
			Name:       "Weekend uplift",
			VillaScope: villas.ScopeAll,
			Modifier:   1.3,
			StartDate:  time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
			Active:     true,
		},
		{
			Name:       "Peak season",
			VillaScope: villas.ScopeAll,
			Modifier:   1.8,
			StartDate:  time.Date(year, 12, 15, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
			Active:     true,
		},
	}
	for i := range rules {
		var existing villas.PricingRule
		err := db.Where("name = ?", rules[i].Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&rules[i]).Error; err != nil {
			return err
		}
	}

	// New Year's Eve in the glass cottage is priced by hand
	var cottage villas.Villa
	if err := db.Where("slug = ?", "glass-cottage").First(&cottage).Error; err != nil {
		return err
	}
	override := villas.DateOverride{
		VillaID: cottage.ID,
		Date:    time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
		Price:   40000,
		Reason:  "New Year's Eve",
	}
	var existing villas.DateOverride
	err := db.Where("villa_id = ? AND date = ?", override.VillaID, override.Date).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&override).Error
}

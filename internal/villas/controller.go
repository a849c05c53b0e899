package villas

import (
	"errors"
	"net/http"
	"time"

	"lagoona/internal/shared/utils/dates"
	"lagoona/internal/shared/utils/response"
	"lagoona/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{service: service, log: logger.GetDefault()}
}

// ListVillas returns the active villa catalog
func (ctrl *Controller) ListVillas(c *gin.Context) {
	villas, err := ctrl.service.ListVillas(c.Request.Context())
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Villas retrieved", villas)
}

// GetVilla returns a single villa by slug
func (ctrl *Controller) GetVilla(c *gin.Context) {
	villa, err := ctrl.service.GetVilla(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrVillaNotFound) {
			response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Villa retrieved", villa)
}

// GetPricing resolves per-night prices for a stay
func (ctrl *Controller) GetPricing(c *gin.Context) {
	checkIn, checkOut, ok := parseStayDates(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	nights, err := ctrl.service.QuoteStay(c.Request.Context(), slug, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, ErrVillaNotFound) {
			response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}

	var total int64
	for _, n := range nights {
		total += n.Price
	}

	response.Success(c, "Pricing resolved", PricingResponse{
		VillaSlug: slug,
		CheckIn:   dates.Format(checkIn),
		CheckOut:  dates.Format(checkOut),
		Nights:    nights,
		Total:     total,
	})
}

// CreateVilla creates a villa (admin)
func (ctrl *Controller) CreateVilla(c *gin.Context) {
	var req CreateVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	villa, err := ctrl.service.CreateVilla(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			response.Error(c, http.StatusConflict, "Villa slug already exists", "DUPLICATE_SLUG")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Created(c, "Villa created", villa)
}

// UpdateVilla updates a villa (admin)
func (ctrl *Controller) UpdateVilla(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid villa id", "BAD_REQUEST")
		return
	}

	var req UpdateVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	villa, err := ctrl.service.UpdateVilla(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrVillaNotFound) {
			response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Villa updated", villa)
}

// DeleteVilla removes a villa (admin)
func (ctrl *Controller) DeleteVilla(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid villa id", "BAD_REQUEST")
		return
	}

	if err := ctrl.service.DeleteVilla(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrVillaNotFound) {
			response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Villa deleted", nil)
}

// ListRules lists pricing rules (admin)
func (ctrl *Controller) ListRules(c *gin.Context) {
	rules, err := ctrl.service.ListRules(c.Request.Context())
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Pricing rules retrieved", rules)
}

// CreateRule creates a pricing rule (admin)
func (ctrl *Controller) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	rule, err := ctrl.service.CreateRule(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrVillaNotFound) {
			response.ValidationFailed(c, map[string]string{"villa_scope": "unknown villa"})
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Created(c, "Pricing rule created", rule)
}

// UpdateRule updates a pricing rule (admin)
func (ctrl *Controller) UpdateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid rule id", "BAD_REQUEST")
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	rule, err := ctrl.service.UpdateRule(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.Error(c, http.StatusNotFound, "Pricing rule not found", "RULE_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Pricing rule updated", rule)
}

// DeleteRule removes a pricing rule (admin)
func (ctrl *Controller) DeleteRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid rule id", "BAD_REQUEST")
		return
	}

	if err := ctrl.service.DeleteRule(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.Error(c, http.StatusNotFound, "Pricing rule not found", "RULE_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Pricing rule deleted", nil)
}

// ListOverrides lists a villa's date overrides (admin)
func (ctrl *Controller) ListOverrides(c *gin.Context) {
	overrides, err := ctrl.service.ListOverrides(c.Request.Context(), c.Query("villa_slug"))
	if err != nil {
		if errors.Is(err, ErrVillaNotFound) {
			response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Date overrides retrieved", overrides)
}

// CreateOverride pins a price to a villa-date (admin)
func (ctrl *Controller) CreateOverride(c *gin.Context) {
	var req CreateOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	override, err := ctrl.service.CreateOverride(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrVillaNotFound) {
			response.ValidationFailed(c, map[string]string{"villa_slug": "unknown villa"})
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Created(c, "Date override created", override)
}

// DeleteOverride removes a date override (admin)
func (ctrl *Controller) DeleteOverride(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid override id", "BAD_REQUEST")
		return
	}

	if err := ctrl.service.DeleteOverride(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			response.Error(c, http.StatusNotFound, "Date override not found", "OVERRIDE_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Date override deleted", nil)
}

// parseStayDates reads check_in/check_out query params and validates the
// stay window, writing a 422 and returning ok=false on failure
func parseStayDates(c *gin.Context) (checkIn, checkOut time.Time, ok bool) {
	fields := map[string]string{}

	checkIn, err := dates.Parse(c.Query("check_in"))
	if err != nil {
		fields["check_in"] = "must be a valid YYYY-MM-DD date"
	}
	checkOut, err = dates.Parse(c.Query("check_out"))
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
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}

package availability

import (
	"errors"
	"net/http"
	"time"

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

// Check resolves availability for one villa and stay window
func (ctrl *Controller) Check(c *gin.Context) {
	villaSlug := c.Query("villa")
	if villaSlug == "" {
		response.ValidationFailed(c, map[string]string{"villa": "is required"})
		return
	}

	checkIn, checkOut, ok := parseStayDates(c)
	if !ok {
		return
	}

	result, err := ctrl.service.CheckAvailability(c.Request.Context(), villaSlug, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, villas.ErrVillaNotFound) {
			response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Availability resolved", result)
}

// ListVillas lists the villas with units free for the stay
func (ctrl *Controller) ListVillas(c *gin.Context) {
	checkIn, checkOut, ok := parseStayDates(c)
	if !ok {
		return
	}

	results, err := ctrl.service.ListAvailableVillas(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Availability resolved", results)
}

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

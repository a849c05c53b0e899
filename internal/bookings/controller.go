package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"lagoona/internal/shared/utils/response"
	"lagoona/internal/villas"
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

// Create validates a booking draft and writes it transactionally
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	booking, err := ctrl.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	response.Created(c, "Booking created", booking)
}

// Lookup returns a booking to its guest by code and email
func (ctrl *Controller) Lookup(c *gin.Context) {
	var req LookupBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	booking, err := ctrl.service.LookupBooking(c.Request.Context(), req.BookingCode, req.GuestEmail)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	response.Success(c, "Booking retrieved", booking)
}

// Cancel lets a guest cancel their own booking
func (ctrl *Controller) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	booking, err := ctrl.service.CancelBooking(c.Request.Context(), req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	response.Success(c, "Booking cancelled", booking)
}

// Pay settles a booking through the demo gateway
func (ctrl *Controller) Pay(c *gin.Context) {
	var req PayBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	booking, err := ctrl.service.ProcessDemoPayment(c.Request.Context(), req)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	response.Success(c, "Payment processed", booking)
}

// AdminList lists bookings with filters and pagination (admin)
func (ctrl *Controller) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := ctrl.service.AdminList(c.Request.Context(), ListFilters{
		VillaSlug:     c.Query("villa"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		GuestEmail:    c.Query("guest_email"),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	response.Success(c, "Bookings retrieved", result)
}

// AdminCancel cancels a booking by id (admin)
func (ctrl *Controller) AdminCancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking id", "BAD_REQUEST")
		return
	}

	if err := ctrl.service.AdminCancel(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err)
		return
	}
	response.Success(c, "Booking cancelled", nil)
}

// AdminComplete marks a finished stay completed (admin)
func (ctrl *Controller) AdminComplete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking id", "BAD_REQUEST")
		return
	}

	if err := ctrl.service.AdminComplete(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err)
		return
	}
	response.Success(c, "Booking completed", nil)
}

// respondError maps domain errors onto the HTTP error taxonomy. Store
// failures always surface as 503; a booking is never fabricated.
func (ctrl *Controller) respondError(c *gin.Context, err error) {
	if ve, ok := AsValidationError(err); ok {
		response.ValidationFailed(c, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, ErrNoAvailability):
		response.Error(c, http.StatusConflict, "No units available for the requested dates", "NO_AVAILABILITY")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND")
	case errors.Is(err, villas.ErrVillaNotFound):
		response.Error(c, http.StatusNotFound, "Villa not found", "VILLA_NOT_FOUND")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrPaymentRequired):
		response.Error(c, http.StatusConflict, "Booking cannot be completed before payment", "PAYMENT_REQUIRED")
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
	}
}

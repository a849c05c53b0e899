package safaris

import (
	"errors"
	"net/http"
	"strconv"

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

// ListTours returns the active safari catalog
func (ctrl *Controller) ListTours(c *gin.Context) {
	tours, err := ctrl.service.ListTours(c.Request.Context())
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Safari tours retrieved", tours)
}

// GetTour returns a single tour by slug
func (ctrl *Controller) GetTour(c *gin.Context) {
	tour, err := ctrl.service.GetTour(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrTourNotFound) {
			response.Error(c, http.StatusNotFound, "Safari tour not found", "TOUR_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Safari tour retrieved", tour)
}

// CreateTour adds a tour (admin)
func (ctrl *Controller) CreateTour(c *gin.Context) {
	var req CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	tour, err := ctrl.service.CreateTour(c.Request.Context(), req)
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Created(c, "Safari tour created", tour)
}

// UpdateTour modifies a tour (admin)
func (ctrl *Controller) UpdateTour(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid tour id", "BAD_REQUEST")
		return
	}

	var req UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	tour, err := ctrl.service.UpdateTour(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrTourNotFound) {
			response.Error(c, http.StatusNotFound, "Safari tour not found", "TOUR_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Safari tour updated", tour)
}

// DeleteTour removes a tour (admin)
func (ctrl *Controller) DeleteTour(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid tour id", "BAD_REQUEST")
		return
	}

	if err := ctrl.service.DeleteTour(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrTourNotFound) {
			response.Error(c, http.StatusNotFound, "Safari tour not found", "TOUR_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Safari tour deleted", nil)
}

// CreateEnquiry files a guest enquiry
func (ctrl *Controller) CreateEnquiry(c *gin.Context) {
	var req CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	enquiry, err := ctrl.service.CreateEnquiry(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrTourNotFound) {
			response.ValidationFailed(c, map[string]string{"tour_slug": "unknown safari tour"})
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Created(c, "Safari enquiry received", enquiry)
}

// ListEnquiries lists enquiries with optional status filter (admin)
func (ctrl *Controller) ListEnquiries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	enquiries, total, err := ctrl.service.ListEnquiries(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}

	response.Success(c, "Safari enquiries retrieved", gin.H{
		"enquiries": enquiries,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// UpdateEnquiryStatus moves an enquiry along its workflow (admin)
func (ctrl *Controller) UpdateEnquiryStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid enquiry id", "BAD_REQUEST")
		return
	}

	var req UpdateEnquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	if !IsValidEnquiryStatus(req.Status) {
		response.ValidationFailed(c, map[string]string{"status": "must be one of new, contacted, confirmed, closed"})
		return
	}

	if err := ctrl.service.UpdateEnquiryStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, ErrEnquiryNotFound) {
			response.Error(c, http.StatusNotFound, "Safari enquiry not found", "ENQUIRY_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Safari enquiry updated", nil)
}

package packages

import (
	"errors"
	"net/http"

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

// List returns the active package catalog
func (ctrl *Controller) List(c *gin.Context) {
	list, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Packages retrieved", list)
}

// Get returns a single package by slug
func (ctrl *Controller) Get(c *gin.Context) {
	pkg, err := ctrl.service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.Error(c, http.StatusNotFound, "Package not found", "PACKAGE_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Package retrieved", pkg)
}

// Create adds a package (admin)
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	pkg, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Created(c, "Package created", pkg)
}

// Update modifies a package (admin)
func (ctrl *Controller) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid package id", "BAD_REQUEST")
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	pkg, err := ctrl.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.Error(c, http.StatusNotFound, "Package not found", "PACKAGE_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Package updated", pkg)
}

// Delete removes a package (admin)
func (ctrl *Controller) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid package id", "BAD_REQUEST")
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.Error(c, http.StatusNotFound, "Package not found", "PACKAGE_NOT_FOUND")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}
	response.Success(c, "Package deleted", nil)
}

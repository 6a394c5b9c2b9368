package vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkhub/internal/middleware"
	"parkhub/internal/pkg/response"
	"parkhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vehicles", h.CreateVehicle)
	rg.GET("/vehicles", h.ListMyVehicles)
	rg.GET("/vehicles/:id", h.GetVehicle)
	rg.PUT("/vehicles/:id", h.UpdateVehicle)
	rg.DELETE("/vehicles/:id", h.DeleteVehicle)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle data", fields)
		return
	}

	v, err := h.service.CreateVehicle(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err, "Failed to create vehicle")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"vehicle": v})
}

func (h *Handler) ListMyVehicles(c *gin.Context) {
	vehicles, err := h.service.ListMyVehicles(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list vehicles")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle ID")
		return
	}

	v, err := h.service.GetVehicle(c.Request.Context(), id, c.GetInt64("user_id"), middleware.ActorRole(c))
	if err != nil {
		h.handleError(c, err, "Failed to get vehicle")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle ID")
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle data", fields)
		return
	}

	v, err := h.service.UpdateVehicle(c.Request.Context(), id, c.GetInt64("user_id"), middleware.ActorRole(c), req)
	if err != nil {
		h.handleError(c, err, "Failed to update vehicle")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle ID")
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), id, c.GetInt64("user_id"), middleware.ActorRole(c)); err != nil {
		h.handleError(c, err, "Failed to delete vehicle")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrDuplicatePlate):
		response.Error(c, http.StatusConflict, "DUPLICATE_PLATE", "Vehicle with this plate number already exists")
	case errors.Is(err, ErrHasActive):
		response.Error(c, http.StatusBadRequest, "HAS_ACTIVE_BOOKING", "Cannot delete vehicle with active bookings")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

package parking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkhub/internal/domain"
	"parkhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read-only slot endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/parking/slots", h.ListSlots)
	rg.GET("/parking/slots/available", h.ListAvailableSlots)
}

// RegisterUserRoutes mounts endpoints for authenticated users.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/parking/book", h.BookSlot)
	rg.POST("/parking/extend", h.ExtendBooking)
}

// RegisterStaffRoutes mounts endpoints for admins and attendants.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/parking/release/:bookingId", h.ReleaseSlot)
}

// RegisterAdminRoutes mounts slot management endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/parking/slots", h.CreateSlot)
	rg.POST("/parking/slots/bulk", h.CreateSlotsBulk)
}

func (h *Handler) ListSlots(c *gin.Context) {
	slots, err := h.service.ListSlots(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list parking slots")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) ListAvailableSlots(c *gin.Context) {
	// vehicleType is accepted but not used for filtering yet.
	vehicleType := domain.VehicleType(c.Query("vehicleType"))

	slots, err := h.service.ListAvailableSlots(c.Request.Context(), vehicleType)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list available slots")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) BookSlot(c *gin.Context) {
	var req BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	booking, err := h.service.BookSlot(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "Failed to book parking slot")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": booking})
}

func (h *Handler) ExtendBooking(c *gin.Context) {
	var req ExtendBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	booking, err := h.service.ExtendBooking(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "Failed to extend booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

func (h *Handler) ReleaseSlot(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
		return
	}

	booking, err := h.service.ReleaseSlot(c.Request.Context(), bookingID)
	if err != nil {
		h.handleError(c, err, "Failed to release slot")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

func (h *Handler) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "Failed to create parking slot")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"slot": slot})
}

func (h *Handler) CreateSlotsBulk(c *gin.Context) {
	var req BulkCreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Slots must be a non-empty array")
		return
	}

	result, err := h.service.CreateSlotsBulk(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "Failed to create parking slots")
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	var dup *DuplicateNumbersError
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrSlotNotAvailable):
		response.Error(c, http.StatusBadRequest, "SLOT_NOT_AVAILABLE", "Parking slot is not available")
	case errors.Is(err, ErrNotActive):
		response.Error(c, http.StatusBadRequest, "NOT_ACTIVE", "Only active bookings can be cancelled")
	case errors.Is(err, ErrAlreadyFinished):
		response.Error(c, http.StatusBadRequest, "ALREADY_FINISHED", "Booking is already cancelled or completed")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrDuplicateNumber):
		response.Error(c, http.StatusConflict, "DUPLICATE_NUMBER", "Parking slot with this number already exists")
	case errors.As(err, &dup):
		response.ErrorWithDetails(c, http.StatusConflict, "DUPLICATE_NUMBER", dup.Error(), gin.H{"numbers": dup.Numbers})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

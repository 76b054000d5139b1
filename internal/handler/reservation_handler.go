package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelmanager/service-rooms/internal/application"
	"github.com/hotelmanager/service-rooms/internal/platform/auth"
	"github.com/hotelmanager/service-rooms/internal/platform/middleware"
	"github.com/hotelmanager/service-rooms/internal/platform/response"
)

// ReservationHandler handles HTTP requests for staff-side reservation
// management.
type ReservationHandler struct {
	service *application.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers all reservation routes on the given router group.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	staff := middleware.RequireRole(auth.RoleManager, auth.RoleEmployee)

	reservations := r.Group("/api/v1/reservations")
	reservations.Use(authMW)
	{
		reservations.GET("", staff, h.ListReservations)
		reservations.PATCH("/:id/status", staff, h.UpdateStatus)
		reservations.GET("/:id/allowed-statuses", staff, h.AllowedStatuses)
		reservations.POST("/by-room/:roomId/cancel", middleware.RequireRole(auth.RoleManager), h.CancelActiveByRoom)
	}
}

// ListReservations handles GET /api/v1/reservations.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ListByHotel(c.Request.Context(), hotelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStatus handles PATCH /api/v1/reservations/:id/status. The caller must
// send the version it last read; a stale version gets a conflict.
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	var body struct {
		Status          string `json:"status" binding:"required"`
		ExpectedVersion int64  `json:"expected_version" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), hotelID, reservationID, body.Status, body.ExpectedVersion)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AllowedStatuses handles GET /api/v1/reservations/:id/allowed-statuses.
func (h *ReservationHandler) AllowedStatuses(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	result, err := h.service.AllowedStatusTargets(c.Request.Context(), hotelID, reservationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelActiveByRoom handles POST /api/v1/reservations/by-room/:roomId/cancel.
// Force-cancels every active reservation on the room and frees it if it had
// merely been reserved.
func (h *ReservationHandler) CancelActiveByRoom(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	if err := h.service.CancelActiveByRoom(c.Request.Context(), hotelID, roomID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

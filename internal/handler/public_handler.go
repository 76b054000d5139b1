package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelmanager/service-rooms/internal/application"
	"github.com/hotelmanager/service-rooms/internal/platform/response"
)

// PublicHandler handles the unauthenticated booking surface: availability
// search and reservation submission.
type PublicHandler struct {
	service *application.ReservationService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(service *application.ReservationService) *PublicHandler {
	return &PublicHandler{service: service}
}

// RegisterRoutes registers the public routes on the given router group. No
// auth middleware: these are reachable by anonymous visitors.
func (h *PublicHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/api/v1/public")
	{
		public.GET("/hotels/:hotelId/available-rooms", h.ListAvailableRooms)
		public.POST("/reservations", h.Book)
	}
}

// ListAvailableRooms handles GET /api/v1/public/hotels/:hotelId/available-rooms.
// Query parameters start_at and end_at are RFC 3339 timestamps.
func (h *PublicHandler) ListAvailableRooms(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	startAt, err := time.Parse(time.RFC3339, c.Query("start_at"))
	if err != nil {
		response.BadRequest(c, "invalid start_at: expected RFC 3339 timestamp")
		return
	}
	endAt, err := time.Parse(time.RFC3339, c.Query("end_at"))
	if err != nil {
		response.BadRequest(c, "invalid end_at: expected RFC 3339 timestamp")
		return
	}

	result, err := h.service.ListAvailableRooms(c.Request.Context(), hotelID, startAt, endAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Book handles POST /api/v1/public/reservations. On success the response
// carries the provisioned guest credentials; the password is shown this one
// time only.
func (h *PublicHandler) Book(c *gin.Context) {
	var req application.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

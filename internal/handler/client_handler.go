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

// ClientHandler handles HTTP requests from authenticated guests managing
// their own reservations.
type ClientHandler struct {
	service *application.ReservationService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *application.ReservationService) *ClientHandler {
	return &ClientHandler{service: service}
}

// RegisterRoutes registers the client routes on the given router group.
func (h *ClientHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	client := r.Group("/api/v1/client/reservations")
	client.Use(authMW, middleware.RequireRole(auth.RoleClient))
	{
		client.GET("", h.ListOwn)
		client.PATCH("/:id/cancel", h.CancelOwn)
	}
}

// ListOwn handles GET /api/v1/client/reservations.
func (h *ClientHandler) ListOwn(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelOwn handles PATCH /api/v1/client/reservations/:id/cancel. Allowed only
// while the reservation is PENDING or CONFIRMED and the stay has not started.
func (h *ClientHandler) CancelOwn(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	if err := h.service.CancelOwn(c.Request.Context(), clientID, reservationID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

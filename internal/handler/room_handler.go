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

// RoomHandler handles HTTP requests for room inventory and state operations.
// All routes are scoped to the hotel of the authenticated staff member.
type RoomHandler struct {
	service *application.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// RegisterRoutes registers all room routes on the given router group.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	staff := middleware.RequireRole(auth.RoleManager, auth.RoleEmployee)

	rooms := r.Group("/api/v1/rooms")
	rooms.Use(authMW)
	{
		rooms.GET("", staff, h.ListRooms)
		rooms.GET("/:id", staff, h.GetRoom)
		rooms.POST("", middleware.RequireRole(auth.RoleManager), h.CreateRoom)
		rooms.PUT("/:id", middleware.RequireRole(auth.RoleManager), h.UpdateRoom)
		rooms.DELETE("/:id", middleware.RequireRole(auth.RoleManager), h.DeleteRoom)
		rooms.PATCH("/:id/state", staff, h.UpdateState)
		rooms.GET("/:id/allowed-states", staff, h.AllowedStates)
		rooms.POST("/generate", middleware.RequireRole(auth.RoleManager), h.GenerateRooms)
	}
}

// ListRooms handles GET /api/v1/rooms.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ListRooms(c.Request.Context(), hotelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRoom handles GET /api/v1/rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomID(c)
	if !ok {
		return
	}

	result, err := h.service.GetRoom(c.Request.Context(), hotelID, roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateRoom handles POST /api/v1/rooms.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRoom(c.Request.Context(), hotelID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateRoom handles PUT /api/v1/rooms/:id. Updates metadata only; the room
// state is untouched.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomID(c)
	if !ok {
		return
	}

	var req application.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRoom(c.Request.Context(), hotelID, roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteRoom handles DELETE /api/v1/rooms/:id.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), hotelID, roomID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateState handles PATCH /api/v1/rooms/:id/state.
func (h *RoomHandler) UpdateState(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomID(c)
	if !ok {
		return
	}

	var body struct {
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateState(c.Request.Context(), hotelID, roomID, body.State)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AllowedStates handles GET /api/v1/rooms/:id/allowed-states.
func (h *RoomHandler) AllowedStates(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomID(c)
	if !ok {
		return
	}

	result, err := h.service.AllowedStates(c.Request.Context(), hotelID, roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GenerateRooms handles POST /api/v1/rooms/generate. Replaces the hotel's
// whole inventory; refused while any active reservation exists.
func (h *RoomHandler) GenerateRooms(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.GenerateRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GenerateRooms(c.Request.Context(), hotelID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// hotelAndRoomID extracts the hotel from the token and the room from the
// path, writing the error response itself when either is missing.
func hotelAndRoomID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return uuid.Nil, uuid.Nil, false
	}

	return hotelID, roomID, true
}

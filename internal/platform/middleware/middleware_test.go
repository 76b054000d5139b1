package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelmanager/service-rooms/internal/platform/auth"
)

func newAuthRouter(t *testing.T, roles ...string) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour, time.Hour)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(jwtManager)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/protected", handlers...)

	return router, jwtManager
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)
	return body.Error.Code, body.Error.Message
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	code, msg := decodeErrorBody(t, w)
	assert.Equal(t, "UNAUTHORIZED", code)
	assert.Equal(t, "missing bearer token", msg)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	code, _ := decodeErrorBody(t, w)
	assert.Equal(t, "UNAUTHORIZED", code)
}

func TestRequireRole_InsufficientRole(t *testing.T) {
	router, jwtManager := newAuthRouter(t, auth.RoleManager)

	token, err := jwtManager.GenerateAccessToken(uuid.New(), uuid.New(), auth.RoleClient)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	code, _ := decodeErrorBody(t, w)
	assert.Equal(t, "FORBIDDEN", code)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	router, jwtManager := newAuthRouter(t, auth.RoleManager, auth.RoleEmployee)

	token, err := jwtManager.GenerateAccessToken(uuid.New(), uuid.New(), auth.RoleEmployee)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

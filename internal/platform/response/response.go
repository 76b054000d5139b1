package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// envelope is the uniform response body for all endpoints.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with a validation error body.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errorBody{Code: string(domain.CodeValidation), Message: msg},
	})
}

// Error maps an application error to its HTTP status. Unrecognized errors
// become an opaque 500 so internal detail never reaches the caller.
func Error(c *gin.Context, err error) {
	var appErr *domain.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, envelope{
			Success: false,
			Error:   &errorBody{Code: "INTERNAL_ERROR", Message: "internal server error"},
		})
		return
	}

	c.JSON(statusFor(appErr.Code), envelope{
		Success: false,
		Error:   &errorBody{Code: string(appErr.Code), Message: appErr.Message},
	})
}

// AbortError writes the mapped error response and stops the handler chain.
// Meant for middleware.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeConflict, domain.CodeInvalidState:
		return http.StatusConflict
	case domain.CodeBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package domain

import "fmt"

// ErrorCode classifies application errors for transport mapping.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeBusinessRule ErrorCode = "BUSINESS_RULE_VIOLATION"
	CodeInvalidState ErrorCode = "INVALID_STATE_TRANSITION"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Error is the application-level error type shared by all services. Handlers
// map its code to an HTTP status in exactly one place.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes errors.Is match on the code, so callers can compare against a
// sentinel constructed with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewValidationError reports malformed input or an invalid payload.
func NewValidationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// NewNotFoundError reports an absent entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewConflictError reports a booking conflict or a lost optimistic-lock race.
func NewConflictError(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// NewBusinessRuleError reports a domain rule violation that is neither a
// validation nor a state-machine failure.
func NewBusinessRuleError(msg string) *Error {
	return &Error{Code: CodeBusinessRule, Message: msg}
}

// NewInvalidStateError reports a transition not present in a state machine's
// transition table.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf("transition not allowed: %s -> %s", from, to)}
}

// NewForbiddenError reports an actor acting on a resource it does not own.
func NewForbiddenError(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// NewUnauthorizedError reports a missing or invalid principal.
func NewUnauthorizedError(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// WrapConflict attaches the underlying cause to a conflict error so storage
// detail stays available for logs without leaking to callers.
func WrapConflict(msg string, cause error) *Error {
	return &Error{Code: CodeConflict, Message: msg, cause: cause}
}

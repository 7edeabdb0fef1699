package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bujo-tasks/internal/hierarchy"
	"github.com/yukikurage/bujo-tasks/internal/logger"
	"github.com/yukikurage/bujo-tasks/internal/recurrence"
	"github.com/yukikurage/bujo-tasks/internal/schedule"
	"github.com/yukikurage/bujo-tasks/internal/services"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized = "UNAUTHORIZED"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInvalidRule  = "INVALID_RECURRENCE_RULE"
	ErrCodeInvalidOrder = "INVALID_TASK_ORDER"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeCorruptHierarchy = "CORRUPT_HIERARCHY"
	ErrCodeIterationLimit   = "ITERATION_LIMIT"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// Predefined errors
var ErrInternalError = NewAPIError(ErrCodeInternalError, "Internal server error")

var notFound = []error{
	services.ErrTaskNotFound,
	services.ErrCompletedTaskNotFound,
	services.ErrProjectNotFound,
	services.ErrProjectTasksNotFound,
	services.ErrUserNotFound,
	services.ErrInvitationNotFound,
	hierarchy.ErrNodeNotFound,
}

var badRequest = []error{
	services.ErrNameRequired,
	services.ErrNameEmpty,
	services.ErrInvalidDuration,
	services.ErrInvalidProjectType,
	services.ErrProjectTypeMismatch,
	services.ErrInvalidProjectName,
	services.ErrUnknownProjectType,
	services.ErrCannotInviteYourself,
	services.ErrUsernameRequired,
	services.ErrInvalidReminderOffset,
	schedule.ErrInvalidDate,
	schedule.ErrInvalidClock,
	schedule.ErrInvalidTimezone,
}

// FromError maps a service error to its HTTP status and response body.
// Errors of an unknown kind become a 500 without leaking their message.
func FromError(err error) (int, *APIError) {
	var (
		malformed *hierarchy.MalformedHierarchyError
		invalid   *recurrence.InvalidRuleError
	)

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden, NewAPIError(ErrCodeForbidden, err.Error())
	case errors.As(err, &invalid):
		return http.StatusBadRequest, NewAPIError(ErrCodeInvalidRule, err.Error())
	case errors.As(err, &malformed):
		return http.StatusInternalServerError, NewAPIError(ErrCodeCorruptHierarchy, "Task hierarchy is corrupt")
	case errors.Is(err, services.ErrUnknownTaskInOrder),
		errors.Is(err, hierarchy.ErrDuplicateID),
		errors.Is(err, hierarchy.ErrInvalidID):
		return http.StatusBadRequest, NewAPIError(ErrCodeInvalidOrder, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember):
		return http.StatusConflict, NewAPIError(ErrCodeConflict, err.Error())
	case errors.Is(err, recurrence.ErrIterationLimit):
		return http.StatusUnprocessableEntity, NewAPIError(ErrCodeIterationLimit, err.Error())
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound, NewAPIError(ErrCodeNotFound, err.Error())
		}
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, err.Error())
		}
	}
	return http.StatusInternalServerError, ErrInternalError
}

// Respond writes the response FromError chooses for err. Server errors are logged.
func Respond(c *gin.Context, err error) {
	status, apiErr := FromError(err)
	if status >= http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	RespondWithError(c, status, apiErr)
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

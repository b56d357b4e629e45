package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Error codes as strings
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "ALREADY_EXISTS"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeInvalidTaskType   = "INVALID_TASK_TYPE"
	CodeInvalidDaysLimit  = "INVALID_DAYS_LIMIT"
	CodeResourceExhausted = "RESOURCE_EXHAUSTED"
)

// RequestIDKey is the key used to store request ID in gin context
const RequestIDKey = "X-Request-ID"

// ErrorDetail provides additional error information
type ErrorDetail struct {
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ErrorResponse is the standard API response structure for errors
type ErrorResponse struct {
	Code      string        `json:"code"`
	HTTPCode  int           `json:"httpCode"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	RequestID string        `json:"requestId"`
}

// GetRequestID retrieves the request ID from context, or generates a new one
func GetRequestID(c *gin.Context) string {
	// Set by the request logger middleware
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	// Sent by the frontend
	if requestID := c.GetHeader(RequestIDKey); requestID != "" {
		return requestID
	}

	return "req-" + uuid.New().String()
}

// Success sends the payload as a bare JSON body
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends the created resource as a bare JSON body
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends an empty 204 response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with details
func Error(c *gin.Context, httpStatus int, code string, message string, details ...ErrorDetail) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Code:      code,
		HTTPCode:  httpStatus,
		Message:   message,
		Details:   details,
		RequestID: GetRequestID(c),
	})
}

// ErrorWithReason sends an error response with a reason and optional metadata
func ErrorWithReason(c *gin.Context, httpStatus int, code string, message string, reason string, metadata map[string]string) {
	details := []ErrorDetail{
		{
			Reason:   reason,
			Metadata: metadata,
		},
	}
	Error(c, httpStatus, code, message, details...)
}

// BadRequest sends a bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// BadRequestWithReason sends a bad request response with reason
func BadRequestWithReason(c *gin.Context, message string, reason string, metadata map[string]string) {
	ErrorWithReason(c, http.StatusBadRequest, CodeBadRequest, message, reason, metadata)
}

// NotFound sends a not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a conflict response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeConflict, message)
}

// InternalError sends an internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternalError, message)
}

// ValidationError sends a validation error response
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeValidationError, message)
}

// InvalidTaskType sends a 400 for template-only operations on other task types
func InvalidTaskType(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidTaskType, message)
}

// InvalidDaysLimit sends a 400 for an out-of-range days window
func InvalidDaysLimit(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidDaysLimit, message)
}

// TooManyRequests sends a 429 with a Retry-After hint in seconds
func TooManyRequests(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	ErrorWithReason(c, http.StatusTooManyRequests, CodeResourceExhausted,
		"rate limit exceeded", "RATE_LIMIT_EXCEEDED",
		map[string]string{"retry_after": strconv.Itoa(retryAfterSeconds)})
}

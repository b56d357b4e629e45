package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/leondli/centriq/pkg/errors"
	"github.com/leondli/centriq/pkg/response"
)

// handleError translates use case errors into HTTP responses
func handleError(c *gin.Context, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		switch {
		case apperrors.IsNotFound(appErr.Err):
			response.NotFound(c, appErr.Message)
		case apperrors.IsAlreadyExists(appErr.Err):
			response.Conflict(c, appErr.Message)
		case apperrors.IsInvalidTaskType(appErr.Err):
			response.InvalidTaskType(c, appErr.Message)
		case apperrors.IsInvalidDaysLimit(appErr.Err):
			response.InvalidDaysLimit(c, appErr.Message)
		case apperrors.IsInvalidInput(appErr.Err):
			response.ValidationError(c, appErr.Message)
		default:
			logInternal(c, err)
			response.InternalError(c, appErr.Message)
		}
		return
	}

	logInternal(c, err)
	response.InternalError(c, "internal server error")
}

func logInternal(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", response.GetRequestID(c)).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+resource+" ID")
		return 0, false
	}
	return uint(id), true
}

// parseCallIDQuery reads the required call_id query parameter
func parseCallIDQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("call_id")
	if raw == "" {
		response.BadRequest(c, "call_id query parameter is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid call ID")
		return 0, false
	}
	return uint(id), true
}

// parseIncludeInactive reads the optional include_inactive flag
func parseIncludeInactive(c *gin.Context) (bool, bool) {
	raw := c.Query("include_inactive")
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(c, "include_inactive must be a boolean")
		return false, false
	}
	return v, true
}

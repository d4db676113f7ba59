package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages,omitempty"`
	Next       *int  `json:"next,omitempty"`
	Prev       *int  `json:"prev,omitempty"`
}

// NewMeta builds pagination meta with next/prev page pointers.
func NewMeta(page, limit int, total int64) *Meta {
	m := &Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		m.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if page < m.TotalPages {
		next := page + 1
		m.Next = &next
	}
	if page > 1 {
		prev := page - 1
		m.Prev = &prev
	}
	return m
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithCount(c *gin.Context, statusCode int, count int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, count int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Count:   &count,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError renders err using its apperror kind. Unclassified errors become
// a 500 with a generic message; the cause is only logged.
func FromError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}

	status := appErr.Kind.HTTPStatus()
	event := log.Warn()
	if status >= 500 {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("kind", appErr.Kind.String()).
		Str("code", appErr.Code).
		Msg("request failed")

	message := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		message = "Internal server error"
	}

	if len(appErr.Details) > 0 {
		ErrorWithDetails(c, status, appErr.Code, message, appErr.Details)
	} else {
		ErrorResponse(c, status, appErr.Code, message)
	}
	c.Abort()
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, 400, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, 401, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, 403, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, 404, "NOT_FOUND", message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorResponse(c, 429, "TOO_MANY_REQUESTS", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, 500, "INTERNAL_SERVER_ERROR", message)
}

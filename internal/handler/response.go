package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nogs0/bot-api-Vercel/internal/log"
	"github.com/Nogs0/bot-api-Vercel/internal/repository"
	"github.com/Nogs0/bot-api-Vercel/internal/service"
)

// chatContentType is the content type the chat integration expects.
const chatContentType = "application/json;charset=utf-8"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Reply is a single message sent back to the chat.
type Reply struct {
	Message string `json:"message"`
}

// ReplyResponse is the envelope the chat integration reads replies from.
type ReplyResponse struct {
	Replies []Reply `json:"replies"`
}

// internalErrorMessage replaces server-side error details in responses.
const internalErrorMessage = "internal error"

// respondError sends an error response with the appropriate HTTP status code.
// Server errors are logged in full and answered with a generic message.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		log.Error(c.Request.Context(), "request failed",
			slog.String("route", c.FullPath()),
			log.Err(err),
		)
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: internalErrorMessage})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the chat content type.
func respondJSON(c *gin.Context, code int, data any) {
	c.Header("Content-Type", chatContentType)
	c.JSON(code, data)
}

// respondReply sends a single chat reply.
func respondReply(c *gin.Context, code int, message string) {
	respondJSON(c, code, ReplyResponse{Replies: []Reply{{Message: message}}})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidPhoneNumber),
		errors.Is(err, service.ErrMissingDriverHeader):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

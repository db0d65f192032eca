// Package response holds the two JSON envelopes every endpoint answers with.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the success body.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

// ErrorEnvelope is the failure body.
type ErrorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// StatusError is implemented by failures that are safe to show to callers.
type StatusError interface {
	error
	StatusCode() int
	PublicMessage() string
}

const internalMessage = "Internal server error"

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{StatusCode: status, Data: data, Message: message})
}

// Fail writes a failure with an explicit status, used for transport level
// problems such as a malformed body or missing credentials.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorEnvelope{StatusCode: status, Message: message, Success: false})
}

// Error maps err onto the failure envelope. Errors that do not carry a status
// become a generic 500; their text is logged and never sent.
func Error(c *gin.Context, err error) {
	var se StatusError
	if errors.As(err, &se) {
		if se.StatusCode() >= http.StatusInternalServerError {
			slog.Error("request_failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		}
		Fail(c, se.StatusCode(), se.PublicMessage())
		return
	}
	slog.Error("request_failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	Fail(c, http.StatusInternalServerError, internalMessage)
}

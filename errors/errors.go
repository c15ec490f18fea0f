package errors

import (
	"fmt"
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error carries a message and the HTTP status it should surface as.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrNotAuthorized       = New("you are not allowed to perform this action", http.StatusForbidden)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
	InActiveUserError      = fmt.Errorf("user inactive")
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// GetUniqueContraintError maps a unique-constraint violation from the
// store to a client-facing conflict error.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return New("email already in use", http.StatusConflict)
	case strings.Contains(msg, "phone"):
		return New("phone number already in use", http.StatusConflict)
	default:
		return New(msg, http.StatusConflict)
	}
}

// ErrorHandler is passed to the rate limiter for throttled requests.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"errors": fmt.Sprintf("too many requests, try again at %s", info.ResetTime.Format("15:04:05")),
	})
}

package shared

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks local presence-check failures.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned after the backend answered 401. It is
	// handled globally and never rendered as a form error.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled by user")
)

const genericMessage = "Error desconocido"

// userFacing is implemented by errors that carry their own display text.
type userFacing interface {
	UserMessage() string
}

// UserMessage returns the text shown to the user for err. Authentication
// failures yield an empty string because the login redirect is the signal.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnauthorized) {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrCancelled) {
		return "Operación cancelada"
	}
	var uf userFacing
	if errors.As(err, &uf) {
		if msg := uf.UserMessage(); msg != "" {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericMessage
}

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is returned when a request path carries a placeholder id
// such as NaN, undefined or null.
var ErrInvalidPath = errors.New("apiclient: invalid id in request path")

// Kind classifies a failed call.
type Kind int

const (
	// KindTransport covers network failures and timeouts: no response arrived.
	KindTransport Kind = iota + 1
	// KindServer covers non-2xx responses other than 401.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

const transportMessage = "No se pudo conectar con el servidor"

// Error describes a failed backend call.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("%s %s: transport: %v", e.Method, e.Path, e.Err)
	default:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
		}
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
}

// Unwrap exposes the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage prefers the server's structured message over a generic text.
func (e *Error) UserMessage() string {
	if e.Kind == KindTransport {
		return transportMessage
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("El servidor respondió con estado %d", e.Status)
}

// StatusCode returns the HTTP status of a server error, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsTransport reports whether err is a network or timeout failure.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

type problemBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// serverMessage extracts the structured message from an error body.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var problem problemBody
	if err := json.Unmarshal(body, &problem); err != nil {
		return ""
	}
	for _, candidate := range []string{problem.Message, problem.Error, problem.Detail} {
		if msg := strings.TrimSpace(candidate); msg != "" {
			return msg
		}
	}
	return ""
}

// Package httpx holds the response helpers shared by the HTTP handlers that
// imitate the BARBOX backend.
package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the error payload the backend sends: {"message": "..."}.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code. A nil body sends
// headers only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends a {"message": ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageBody{Message: msg})
}

// DecodeJSON decodes the request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

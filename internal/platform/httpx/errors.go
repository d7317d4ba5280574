package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors handlers map to backend answers.
var (
	ErrNotFound     = errors.New("registro no encontrado")
	ErrDuplicate    = errors.New("el registro ya existe")
	ErrBadRequest   = errors.New("solicitud inválida")
	ErrUnauthorized = errors.New("token inválido o expirado")
)

// RespondError answers with the status matching err and the backend's
// wording for it.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Message(w, http.StatusNotFound, "Registro no encontrado")
	case errors.Is(err, ErrDuplicate):
		Message(w, http.StatusConflict, "El registro ya existe")
	case errors.Is(err, ErrBadRequest):
		Message(w, http.StatusBadRequest, "JSON inválido")
	case errors.Is(err, ErrUnauthorized):
		Message(w, http.StatusUnauthorized, "Token inválido o expirado")
	default:
		Message(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

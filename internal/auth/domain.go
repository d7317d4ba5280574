package auth

import (
	"bytes"
	"encoding/json"
)

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the outcome of a successful login.
type Session struct {
	Token    string
	Username string
}

type loginResponse struct {
	Token   string          `json:"token"`
	Usuario json.RawMessage `json:"usuario"`
}

// username reads the usuario field, which the backend sends either as a
// plain string or as the employee object.
func (r loginResponse) username() string {
	raw := bytes.TrimSpace(r.Usuario)
	if len(raw) == 0 {
		return ""
	}
	var name string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &name); err == nil {
			return name
		}
		return ""
	}
	var profile struct {
		Usuario string `json:"usuario"`
		Nombre1 string `json:"nombre1"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return ""
	}
	if profile.Usuario != "" {
		return profile.Usuario
	}
	return profile.Nombre1
}

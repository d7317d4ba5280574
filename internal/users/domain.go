package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Employee is a back-office user. The password is only ever written; an
// update with a blank password leaves the stored one unchanged.
type Employee struct {
	ID         int64  `json:"id_empleado,omitempty"`
	NationalID string `json:"cedula" validate:"required"`
	FirstName  string `json:"nombre1" validate:"required"`
	MiddleName string `json:"nombre2,omitempty"`
	LastName   string `json:"apellido1" validate:"required"`
	SecondLast string `json:"apellido2,omitempty"`
	Phone      string `json:"telefono,omitempty"`
	RoleID     int64  `json:"id_rol" validate:"required"`
	Username   Username `json:"usuario" validate:"required_without=ID"`
	Password   string `json:"password" validate:"required_without=ID"`
	Status     string `json:"estado"`
}

// FullName joins the non-empty name parts.
func (e Employee) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{e.FirstName, e.MiddleName, e.LastName, e.SecondLast} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Username is the login name. Listings send it either as a plain string or
// nested as the user account object; it is always written as a string.
type Username string

// UnmarshalJSON implements json.Unmarshaler.
func (u *Username) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*u = ""
		return nil
	case raw[0] == '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return err
		}
		*u = Username(name)
		return nil
	}
	var account struct {
		Usuario string `json:"usuario"`
	}
	if err := json.Unmarshal(raw, &account); err != nil {
		return fmt.Errorf("usuario: %w", err)
	}
	*u = Username(account.Usuario)
	return nil
}

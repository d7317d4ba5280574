// Package shared holds the status conventions common to catalog entities.
package shared

import (
	"strconv"

	"github.com/barbox/barbox-admin/internal/resource"
)

// Status codes used by the estado field.
const (
	StatusActive   = "ACT"
	StatusInactive = "INA"
)

// StatusLabel renders an estado code in words.
func StatusLabel(code string) string {
	switch code {
	case StatusActive:
		return "Activo"
	case StatusInactive:
		return "Inactivo"
	default:
		return code
	}
}

// Estado declares an ACT/INA estado field reached through route.
func Estado[T any](route resource.StatusRoute, of func(T) string) *resource.Status[T] {
	return &resource.Status[T]{
		Field:         "estado",
		Active:        StatusActive,
		Inactive:      StatusInactive,
		ActiveLabel:   "Activo",
		InactiveLabel: "Inactivo",
		Route:         route,
		Of:            func(rec T) any { return of(rec) },
	}
}

// Activo declares a boolean activo field, written through plain update.
func Activo[T any](of func(T) bool) *resource.Status[T] {
	return &resource.Status[T]{
		Field:         "activo",
		Active:        true,
		Inactive:      false,
		ActiveLabel:   "Activo",
		InactiveLabel: "Inactivo",
		Route:         resource.StatusViaUpdate,
		Of:            func(rec T) any { return of(rec) },
	}
}

// YesNo renders a flag for exports.
func YesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

// FormatID renders a foreign key, or "" when unset.
func FormatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// Package resource holds the per-entity REST gateway and the schema that
// parametrizes the list and form controllers.
package resource

// StatusRoute selects how a status change reaches the backend.
type StatusRoute int

const (
	// StatusViaAction sends PUT /{resource}/{id}/estado.
	StatusViaAction StatusRoute = iota
	// StatusViaUpdate sends PUT /{resource}/{id} with the status field and
	// any companion fields the schema declares.
	StatusViaUpdate
)

// Status describes a two-valued soft-delete field.
type Status[T any] struct {
	Field         string
	Active        any
	Inactive      any
	ActiveLabel   string
	InactiveLabel string
	Route         StatusRoute
	Of            func(T) any
	// With returns the fields that must accompany a status change for
	// backends whose update endpoint expects the full row. Nil sends only
	// the status field.
	With func(T) map[string]any
}

// Companions returns the fields sent alongside a status change of rec.
func (s *Status[T]) Companions(rec T) map[string]any {
	if s.With == nil {
		return nil
	}
	return s.With(rec)
}

// Next returns the opposite of the record's current status. Any value other
// than Active is treated as inactive.
func (s *Status[T]) Next(rec T) any {
	if s.Of(rec) == s.Active {
		return s.Inactive
	}
	return s.Active
}

// Label renders a status value in words.
func (s *Status[T]) Label(v any) string {
	if v == s.Active {
		return s.ActiveLabel
	}
	return s.InactiveLabel
}

// Schema declares everything the generic controllers need to know about an
// entity.
type Schema[T any] struct {
	// Entity is the stable key used for de-duplication, notices and file names.
	Entity string
	// Path is the REST collection path relative to the API base.
	Path string
	// Label is the singular display name.
	Label string

	IDKind IDKind
	IDOf   func(T) ID

	// New returns the defaults of a blank form. Nil means the zero value.
	New func() T
	// Normalize adjusts a draft before validation and submission.
	Normalize func(*T)
	// Sensitive lists JSON fields dropped from update payloads when blank.
	Sensitive []string
	// Searchable marks entities exposing GET /{resource}/buscar.
	Searchable bool
	// DeletePrompt replaces the generic delete confirmation.
	DeletePrompt string

	Status *Status[T]
}

// Blank returns a fresh draft.
func (s Schema[T]) Blank() T {
	if s.New != nil {
		return s.New()
	}
	var zero T
	return zero
}

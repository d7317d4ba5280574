package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned before any request is built when an identifier is
// missing, a placeholder, or of the wrong kind for the entity.
var ErrInvalidID = errors.New("invalid id")

// IDKind is the canonical identifier representation of an entity.
type IDKind int

const (
	// NumericKind identifiers are positive surrogate keys.
	NumericKind IDKind = iota + 1
	// CodeKind identifiers are alphanumeric codes such as "P000016" or "UIO".
	CodeKind
)

func (k IDKind) String() string {
	switch k {
	case NumericKind:
		return "numeric"
	case CodeKind:
		return "code"
	default:
		return "unset"
	}
}

var placeholders = map[string]bool{
	"nan":       true,
	"undefined": true,
	"null":      true,
	"nil":       true,
}

// ID identifies one record. The zero ID is "no identifier".
type ID struct {
	kind IDKind
	num  int64
	code string
}

// NumericID builds a numeric identifier.
func NumericID(n int64) ID {
	return ID{kind: NumericKind, num: n}
}

// CodeID builds a code identifier. The code is kept exactly as given.
func CodeID(code string) ID {
	return ID{kind: CodeKind, code: code}
}

// ParseID reads raw user input into an identifier of the given kind.
func ParseID(kind IDKind, raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || placeholders[strings.ToLower(trimmed)] {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	switch kind {
	case NumericKind:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil || n <= 0 {
			return ID{}, fmt.Errorf("%w: %q is not a positive number", ErrInvalidID, raw)
		}
		return NumericID(n), nil
	case CodeKind:
		return CodeID(trimmed), nil
	default:
		return ID{}, fmt.Errorf("%w: unknown id kind", ErrInvalidID)
	}
}

// Kind reports the identifier representation.
func (id ID) Kind() IDKind { return id.kind }

// IsZero reports whether no identifier is bound.
func (id ID) IsZero() bool { return id.kind == 0 }

// Int64 returns the numeric value, or 0 for code identifiers.
func (id ID) Int64() int64 { return id.num }

// String renders the identifier as a path segment.
func (id ID) String() string {
	switch id.kind {
	case NumericKind:
		return strconv.FormatInt(id.num, 10)
	case CodeKind:
		return id.code
	default:
		return ""
	}
}

// Validate checks the identifier is usable for an entity whose canonical
// representation is want.
func (id ID) Validate(want IDKind) error {
	if id.IsZero() {
		return fmt.Errorf("%w: missing", ErrInvalidID)
	}
	if want != 0 && id.kind != want {
		return fmt.Errorf("%w: %s id %q used where a %s id is required", ErrInvalidID, id.kind, id.String(), want)
	}
	switch id.kind {
	case NumericKind:
		if id.num <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidID, id.num)
		}
	case CodeKind:
		trimmed := strings.TrimSpace(id.code)
		if trimmed == "" || placeholders[strings.ToLower(trimmed)] {
			return fmt.Errorf("%w: %q", ErrInvalidID, id.code)
		}
	}
	return nil
}

// Equal reports whether both identifiers have the same kind and value.
func (id ID) Equal(other ID) bool {
	return id == other
}

// MarshalJSON keeps the native representation: numbers stay numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case NumericKind:
		return json.Marshal(id.num)
	case CodeKind:
		return json.Marshal(id.code)
	default:
		return []byte("null"), nil
	}
}

package listing

import "strings"

const unknownName = "N/A"

// Lookup indexes reference records by key for display joins such as
// showing a brand name next to a product's id_marca.
type Lookup[K comparable] struct {
	names    map[K]string
	fallback string
}

// NewLookup builds a lookup from any reference list.
func NewLookup[R any, K comparable](records []R, key func(R) K, name func(R) string) Lookup[K] {
	names := make(map[K]string, len(records))
	for _, rec := range records {
		names[key(rec)] = strings.TrimSpace(name(rec))
	}
	return Lookup[K]{names: names}
}

// WithFallback sets the text shown for unknown keys.
func (l Lookup[K]) WithFallback(text string) Lookup[K] {
	l.fallback = text
	return l
}

// Name returns the display name for key, or the fallback ("N/A" unless set)
// when the key is unknown.
func (l Lookup[K]) Name(key K) string {
	if name, ok := l.names[key]; ok && name != "" {
		return name
	}
	if l.fallback == "" {
		return unknownName
	}
	return l.fallback
}

// Len reports the number of indexed records.
func (l Lookup[K]) Len() int {
	return len(l.names)
}

package listing

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Criteria maps a filter name to its raw value. Missing or blank values
// impose no constraint.
type Criteria map[string]string

// Get returns the trimmed value for name.
func (c Criteria) Get(name string) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c[name])
}

// Filter is one predicate of an entity's filter set.
type Filter[T any] struct {
	keys  []string
	match func(rec T, c Criteria) bool
}

// Keys lists the criteria names the filter reads.
func (f Filter[T]) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Apply returns the records matching every filter, in snapshot order. The
// snapshot is never modified; the result is always a new slice.
func Apply[T any](snapshot []T, filters []Filter[T], criteria Criteria) []T {
	out := make([]T, 0, len(snapshot))
	for _, rec := range snapshot {
		if matchesAll(rec, filters, criteria) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll[T any](rec T, filters []Filter[T], criteria Criteria) bool {
	for _, f := range filters {
		if f.match != nil && !f.match(rec, criteria) {
			return false
		}
	}
	return true
}

// Search matches a case-insensitive substring against any of the fields.
func Search[T any](name string, fields ...func(T) string) Filter[T] {
	return Filter[T]{
		keys: []string{name},
		match: func(rec T, c Criteria) bool {
			term := c.Get(name)
			if term == "" {
				return true
			}
			needle := fold(term)
			for _, field := range fields {
				if strings.Contains(fold(field(rec)), needle) {
					return true
				}
			}
			return false
		},
	}
}

// Equals matches a code or foreign key exactly, ignoring case.
func Equals[T any](name string, field func(T) string) Filter[T] {
	return Filter[T]{
		keys: []string{name},
		match: func(rec T, c Criteria) bool {
			want := c.Get(name)
			if want == "" {
				return true
			}
			return fold(strings.TrimSpace(field(rec))) == fold(want)
		},
	}
}

// Flag matches a boolean field against "true"/"false". Other values impose
// no constraint.
func Flag[T any](name string, field func(T) bool) Filter[T] {
	return Filter[T]{
		keys: []string{name},
		match: func(rec T, c Criteria) bool {
			want, err := strconv.ParseBool(c.Get(name))
			if err != nil {
				return true
			}
			return field(rec) == want
		},
	}
}

// When applies pred only while the named toggle is switched on.
func When[T any](name string, pred func(T) bool) Filter[T] {
	return Filter[T]{
		keys: []string{name},
		match: func(rec T, c Criteria) bool {
			on, err := strconv.ParseBool(c.Get(name))
			if err != nil || !on {
				return true
			}
			return pred(rec)
		},
	}
}

// NumberRange bounds a numeric field. Both ends are inclusive; an absent or
// unparsable bound is ignored.
func NumberRange[T any](minKey, maxKey string, field func(T) float64) Filter[T] {
	return Filter[T]{
		keys: []string{minKey, maxKey},
		match: func(rec T, c Criteria) bool {
			value := field(rec)
			if lo, ok := parseNumber(c.Get(minKey)); ok && value < lo {
				return false
			}
			if hi, ok := parseNumber(c.Get(maxKey)); ok && value > hi {
				return false
			}
			return true
		},
	}
}

// DateRange bounds a date field at day granularity, inclusive on both ends.
// Records whose date cannot be read fail an active bound.
func DateRange[T any](fromKey, toKey string, field func(T) string) Filter[T] {
	return Filter[T]{
		keys: nonBlank(fromKey, toKey),
		match: func(rec T, c Criteria) bool {
			from, hasFrom := ParseDay(c.Get(fromKey))
			to, hasTo := ParseDay(c.Get(toKey))
			if !hasFrom && !hasTo {
				return true
			}
			day, ok := ParseDay(field(rec))
			if !ok {
				return false
			}
			if hasFrom && day.Before(from) {
				return false
			}
			if hasTo && day.After(to) {
				return false
			}
			return true
		},
	}
}

// DateFrom keeps records whose date is on or after the named bound.
func DateFrom[T any](key string, field func(T) string) Filter[T] {
	return DateRange(key, "", field)
}

// DateUntil keeps records whose date is on or before the named bound.
func DateUntil[T any](key string, field func(T) string) Filter[T] {
	return DateRange("", key, field)
}

var dayLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDay reads a date or timestamp and truncates it to its calendar day.
func ParseDay(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func nonBlank(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// fold lower-cases with full Unicode case folding. A Caser is stateful, so
// each call builds its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

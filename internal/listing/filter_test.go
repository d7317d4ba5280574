package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type bottle struct {
	Code    string
	Name    string
	Brand   string
	Price   float64
	Active  bool
	Low     bool
	Arrived string
}

var cellar = []bottle{
	{Code: "P1", Name: "Ron Añejo", Brand: "7", Price: 12.5, Active: true, Arrived: "2026-01-10"},
	{Code: "P2", Name: "WHISKY Reserva", Brand: "3", Price: 40, Active: false, Low: true, Arrived: "2026-02-01T10:00:00Z"},
	{Code: "P3", Name: "Vino tinto", Brand: "7", Price: 8, Active: true, Arrived: "sin fecha"},
}

var cellarFilters = []Filter[bottle]{
	Search("search", func(b bottle) string { return b.Name }, func(b bottle) string { return b.Code }),
	Equals("marca", func(b bottle) string { return b.Brand }),
	Flag("activo", func(b bottle) bool { return b.Active }),
	When("stock_bajo", func(b bottle) bool { return b.Low }),
	NumberRange("precio_min", "precio_max", func(b bottle) float64 { return b.Price }),
	DateRange("desde", "hasta", func(b bottle) string { return b.Arrived }),
}

func codes(rows []bottle) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Code
	}
	return out
}

func TestApplyEmptyCriteriaReturnsSnapshotInOrder(t *testing.T) {
	for _, crit := range []Criteria{nil, {}, {"search": "  ", "activo": "", "marca": ""}} {
		got := Apply(cellar, cellarFilters, crit)
		require.Equal(t, cellar, got)
	}
}

func TestApplyDoesNotAliasSnapshot(t *testing.T) {
	got := Apply(cellar, cellarFilters, nil)
	got[0].Name = "changed"
	require.Equal(t, "Ron Añejo", cellar[0].Name)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	require.Equal(t, []string{"P1"}, codes(Apply(cellar, cellarFilters, Criteria{"search": "AÑEJO"})))
	require.Equal(t, []string{"P2"}, codes(Apply(cellar, cellarFilters, Criteria{"search": "whisky"})))
	require.Equal(t, []string{"P3"}, codes(Apply(cellar, cellarFilters, Criteria{"search": "p3"})))
	require.Empty(t, Apply(cellar, cellarFilters, Criteria{"search": "cerveza"}))
}

func TestFiltersCombine(t *testing.T) {
	got := Apply(cellar, cellarFilters, Criteria{"marca": "7", "activo": "true", "precio_max": "10"})
	require.Equal(t, []string{"P3"}, codes(got))
}

func TestFlagIgnoresUnparsableValues(t *testing.T) {
	require.Len(t, Apply(cellar, cellarFilters, Criteria{"activo": "quizás"}), 3)
	require.Equal(t, []string{"P2"}, codes(Apply(cellar, cellarFilters, Criteria{"activo": "false"})))
}

func TestWhenOnlyAppliesWhileOn(t *testing.T) {
	require.Len(t, Apply(cellar, cellarFilters, Criteria{"stock_bajo": "false"}), 3)
	require.Equal(t, []string{"P2"}, codes(Apply(cellar, cellarFilters, Criteria{"stock_bajo": "true"})))
}

func TestNumberRangeIsInclusive(t *testing.T) {
	got := Apply(cellar, cellarFilters, Criteria{"precio_min": "8", "precio_max": "12,5"})
	require.Equal(t, []string{"P1", "P3"}, codes(got))
	require.Len(t, Apply(cellar, cellarFilters, Criteria{"precio_min": "abc"}), 3)
}

func TestDateRangeUsesDayGranularity(t *testing.T) {
	got := Apply(cellar, cellarFilters, Criteria{"desde": "2026-02-01", "hasta": "2026-02-01"})
	require.Equal(t, []string{"P2"}, codes(got))

	got = Apply(cellar, cellarFilters, Criteria{"hasta": "2026-01-31"})
	require.Equal(t, []string{"P1"}, codes(got), "unreadable dates fail an active bound")
}

func TestDateFromAndUntil(t *testing.T) {
	filters := []Filter[bottle]{
		DateFrom("inicio", func(b bottle) string { return b.Arrived }),
		DateUntil("fin", func(b bottle) string { return b.Arrived }),
	}
	require.Equal(t, []string{"inicio"}, filters[0].Keys())
	require.Equal(t, []string{"fin"}, filters[1].Keys())
	require.Equal(t, []string{"P2"}, codes(Apply(cellar, filters, Criteria{"inicio": "2026-01-11"})))
	require.Equal(t, []string{"P1"}, codes(Apply(cellar, filters, Criteria{"fin": "2026-01-10"})))
}

func TestParseDay(t *testing.T) {
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2026-03-04", "2026-03-04T23:59:59Z", "2026-03-04 08:00:00", "2026-03-04T08:00:00", "2026-03-04T08:00:00.123-05:00"} {
		got, ok := ParseDay(raw)
		require.True(t, ok, raw)
		require.Equal(t, want, got, raw)
	}
	_, ok := ParseDay("04/03/2026")
	require.False(t, ok)
}

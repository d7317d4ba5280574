package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type brand struct {
	ID   int64
	Name string
}

func TestLookupResolvesNames(t *testing.T) {
	l := NewLookup([]brand{{1, " Bacardí "}, {2, ""}}, func(b brand) int64 { return b.ID }, func(b brand) string { return b.Name })

	require.Equal(t, 2, l.Len())
	require.Equal(t, "Bacardí", l.Name(1))
	require.Equal(t, "N/A", l.Name(2))
	require.Equal(t, "N/A", l.Name(99))
	require.Equal(t, "-", l.WithFallback("-").Name(99))
}

func TestZeroLookup(t *testing.T) {
	var l Lookup[string]
	require.Equal(t, "N/A", l.Name("GYE"))
	require.Zero(t, l.Len())
}

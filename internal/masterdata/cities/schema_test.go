package cities

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/listing"
)

func TestNormalizeUppercasesCode(t *testing.T) {
	c := City{ID: " uio ", Description: " Quito "}
	Schema.Normalize(&c)
	require.Equal(t, City{ID: "UIO", Description: "Quito"}, c)
}

func TestLookupFallsBackToNA(t *testing.T) {
	l := Lookup([]City{{ID: "GYE", Description: "Guayaquil"}})
	require.Equal(t, "Guayaquil", l.Name("GYE"))
	require.Equal(t, "N/A", l.Name("CUE"))
}

func TestSearchMatchesCodeOrName(t *testing.T) {
	list := []City{{ID: "UIO", Description: "Quito"}, {ID: "GYE", Description: "Guayaquil"}}
	require.Len(t, listing.Apply(list, Filters(), listing.Criteria{"search": "gye"}), 1)
	require.Len(t, listing.Apply(list, Filters(), listing.Criteria{"search": "quit"}), 1)
	require.Len(t, listing.Apply(list, Filters(), listing.Criteria{"search": "QUI"}), 2)
	require.Len(t, listing.Apply(list, Filters(), listing.Criteria{}), 2)
}

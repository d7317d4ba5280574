package resource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberAcceptsBackendShapes(t *testing.T) {
	cases := map[string]float64{
		`10.5`:    10.5,
		`"10.50"`: 10.5,
		`"3,25"`:  3.25,
		`null`:    0,
		`""`:      0,
		`" 7 "`:   7,
	}
	for raw, want := range cases {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(raw), &n), raw)
		require.InDelta(t, want, n.Float64(), 1e-9, raw)
	}
}

func TestNumberRejectsGarbage(t *testing.T) {
	var n Number
	require.Error(t, json.Unmarshal([]byte(`"diez"`), &n))
}

func TestNumberFormatting(t *testing.T) {
	n := Number(10.499)
	require.Equal(t, "10.50", n.String())
	require.Equal(t, "10.499", n.Decimal().String())

	raw, err := json.Marshal(struct {
		Price Number `json:"precio"`
	}{Price: 2.5})
	require.NoError(t, err)
	require.JSONEq(t, `{"precio":2.5}`, string(raw))
}

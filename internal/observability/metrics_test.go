package observability

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestCountsByCode(t *testing.T) {
	metrics := NewMetrics()

	metrics.ObserveRequest("productos", "GET", 200, 15*time.Millisecond)
	metrics.ObserveRequest("productos", "GET", 200, 5*time.Millisecond)
	metrics.ObserveRequest("productos", "PUT", 0, time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("productos", "GET", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("productos", "PUT", "none")))

	expected := `
# HELP barbox_mutations_total List mutations by entity, intent and outcome.
# TYPE barbox_mutations_total counter
barbox_mutations_total{entity="ciudades",intent="create",outcome="ok"} 1
`
	metrics.ObserveMutation("ciudades", "create", "ok")
	require.NoError(t, testutil.GatherAndCompare(metrics.Gatherer(), strings.NewReader(expected), "barbox_mutations_total"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var metrics *Metrics
	require.NotPanics(t, func() {
		metrics.ObserveRequest("x", "GET", 500, time.Second)
		metrics.ObserveMutation("x", "delete", "error")
	})
	require.NotNil(t, metrics.Registerer())
}

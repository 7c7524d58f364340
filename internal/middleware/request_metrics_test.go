package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/3reps/liftlog/internal/instrumentation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestMetricsMiddleware(t *testing.T) {
	instr := instrumentation.NewTestInstrumentation()

	var inFlight float64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight = testutil.ToFloat64(instr.GaugeRequests)
		w.WriteHeader(http.StatusCreated)
	})
	handler := RequestMetrics(instr)(next)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/log", nil)
	handler.ServeHTTP(rr, req)

	// gauge is up while the handler runs, back down afterwards
	assert.Equal(t, float64(1), inFlight)
	assert.Equal(t, float64(0), testutil.ToFloat64(instr.GaugeRequests))

	counter := instr.CounterRequests.With(prometheus.Labels{
		"method": "POST",
		"status": "201",
	})
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}

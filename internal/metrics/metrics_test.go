package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/hackathons/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/hackathons/{id}", "404"))
	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hackathons/"+id, nil))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/hackathons/{id}", "404"))

	require.Equal(t, 2.0, after-before)
}

func TestSweepCounters(t *testing.T) {
	before := testutil.ToFloat64(sweepTransitions.WithLabelValues("completed"))
	RecordSweepTransitions("completed", 3)
	RecordSweepTransitions("completed", 0)
	require.Equal(t, 3.0, testutil.ToFloat64(sweepTransitions.WithLabelValues("completed"))-before)

	before = testutil.ToFloat64(sweepFailures.WithLabelValues("ongoing"))
	RecordSweepFailure("ongoing")
	require.Equal(t, 1.0, testutil.ToFloat64(sweepFailures.WithLabelValues("ongoing"))-before)
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordSubmission()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hackathons_submitted_total")
}

func TestMiddlewareKeepsFlusher(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	flushed := false
	r.Get("/stream", func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		require.True(t, ok)
		w.Write([]byte("chunk"))
		f.Flush()
		flushed = true
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/stream", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stream", nil))

	require.True(t, flushed)
	require.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/stream", "200"))-before)
}

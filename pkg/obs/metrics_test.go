package obs

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestInstrumentUsesRoutePattern(t *testing.T) {
	m := New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /people/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := m.Instrument(mux)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/people/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	// One series for all three ids
	out := scrape(t, m)
	require.Contains(t, out, `flock_http_requests_total{method="GET",route="GET /people/{id}",status="418"} 3`)
	require.NotContains(t, out, `/people/a`)
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.ObserveLogin("success")
	m.ObserveLogin("failure")
	m.ObserveLogin("failure")
	m.ObserveAudit("person", "created")
	m.ObserveSwept("sessions", 4)
	m.ObserveSwept("sessions", 0) // ignored
	m.ObservePlanLimit("people")

	out := scrape(t, m)
	require.Contains(t, out, `flock_logins_total{result="failure"} 2`)
	require.Contains(t, out, `flock_audit_events_total{action="created",entity="person"} 1`)
	require.Contains(t, out, `flock_housekeeping_swept_total{kind="sessions"} 4`)
	require.Contains(t, out, `flock_plan_limit_reached_total{resource="people"} 1`)
}

func TestNilMetrics(t *testing.T) {
	// services run without metrics in most tests
	var none *Metrics
	require.NotPanics(t, func() {
		none.ObserveLogin("success")
		none.ObserveAudit("person", "created")
		none.ObserveRateLimited("login")
		none.ObserveSwept("sessions", 1)
		none.ObservePlanLimit("groups")
	})
}

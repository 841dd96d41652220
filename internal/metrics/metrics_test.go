package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	require.NotNil(t, c)

	c.RecordAuth("login", OutcomeSuccess)
	c.RecordSessionsSwept(1)
	c.RecordStudentsImported(1)
	c.RecordHTTPRequest(http.MethodGet, http.StatusOK, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"registry_auth_operations_total",
		"registry_sessions_swept_total",
		"registry_students_imported_total",
		"registry_http_requests_total",
		"registry_http_request_duration_seconds",
	} {
		assert.True(t, names[want], "metric %s not registered", want)
	}
}

func TestNewCollector_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}

func TestRecordAuth_CountsByLabels(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordAuth("login", OutcomeSuccess)
	c.RecordAuth("login", OutcomeSuccess)
	c.RecordAuth("login", OutcomeFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.authOps.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.authOps.WithLabelValues("login", OutcomeFailure)))
}

func TestRecordSessionsSwept_IgnoresNonPositive(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordSessionsSwept(3)
	c.RecordSessionsSwept(0)
	c.RecordSessionsSwept(-1)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.sessionsSwept))
}

func TestRecordStudentsImported(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordStudentsImported(5)
	c.RecordStudentsImported(0)

	assert.Equal(t, 5.0, testutil.ToFloat64(c.studentsImported))
}

func TestRecordHTTPRequest(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordHTTPRequest(http.MethodPost, http.StatusUnauthorized, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues(http.MethodPost, "401")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.httpLatency))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordStudentsImported(2)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "registry_students_imported_total 2")
}

func TestNop_DoesNotPanic(t *testing.T) {
	n := Nop()

	assert.NotPanics(t, func() {
		n.RecordAuth("login", OutcomeError)
		n.RecordSessionsSwept(1)
		n.RecordStudentsImported(1)
		n.RecordHTTPRequest(http.MethodGet, http.StatusOK, time.Second)
	})
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/recruits/:id", "200"))

	ObserveHTTP("GET", "/api/v1/recruits/:id", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/recruits/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordSweep_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(sweepRows.WithLabelValues("offer", "held"))

	RecordSweep("offer", "held", 0)
	RecordSweep("offer", "held", 3)

	assert.Equal(t, before+3, testutil.ToFloat64(sweepRows.WithLabelValues("offer", "held")))
}

func TestHandler_Exposition(t *testing.T) {
	RecordTracking("recruit", "view", "accepted")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hostmarket_tracking_events_total")
}

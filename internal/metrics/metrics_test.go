package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobRefreshesCounter(t *testing.T) {
	before := testutil.ToFloat64(JobRefreshes.WithLabelValues("success"))
	JobRefreshes.WithLabelValues("success").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(JobRefreshes.WithLabelValues("success")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	HTTPRequests.WithLabelValues("/", "GET", "200").Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jobtune_http_requests_total")
}

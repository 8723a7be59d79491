package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mpesarelay/internal/provider"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	p := New("relay")
	p.ObserveOperation(provider.OpSTKPush, "success", 120*time.Millisecond)
	p.ObserveOperation(provider.OpSTKPush, "success", 80*time.Millisecond)
	p.ObserveOperation(provider.OpSTKPush, "auth_error", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.operations.WithLabelValues("stk_push", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.operations.WithLabelValues("stk_push", "auth_error")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.latency))
}

func TestHandlerExposesMetrics(t *testing.T) {
	p := New("relay")
	p.ObserveOperation(provider.OpB2C, "request_error", time.Second)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `relay_mpesa_operations_total{operation="b2c",outcome="request_error"} 1`)
}

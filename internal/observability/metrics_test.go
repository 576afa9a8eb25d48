package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/api/v1/incomes")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/incomes", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTeapot, rr.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("/api/v1/incomes", "418")))

	metricsRR := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsRR.Body.String(), `vipledger_http_request_duration_seconds_bucket{route="/api/v1/incomes"`)
}

func TestNilMetrics(t *testing.T) {
	var metrics *Metrics

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	ctrl := gomock.NewController(t)
	slot := ledger.NewMockSlot(ctrl)
	assert.Same(t, slot, InstrumentSlot(slot, metrics))
}

func TestInstrumentSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	metrics := NewMetrics()
	inner := ledger.NewMockSlot(ctrl)

	gomock.InOrder(
		inner.EXPECT().Read(gomock.Any()).Return(nil, ledger.ErrSlotEmpty),
		inner.EXPECT().Write(gomock.Any(), []byte("{}")).Return(nil),
		inner.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
	)

	s := InstrumentSlot(inner, metrics)

	_, err := s.Read(ctx)
	require.ErrorIs(t, err, ledger.ErrSlotEmpty)
	require.NoError(t, s.Write(ctx, []byte("{}")))
	require.Error(t, s.Write(ctx, []byte("{}")))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.slotOps.WithLabelValues("read", "empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.slotOps.WithLabelValues("write", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.slotOps.WithLabelValues("write", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.slotBytes))
}

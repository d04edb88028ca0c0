package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/skucatalog/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

// setupTestMeter sets up a test meter provider and reader.
func setupTestMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})
	return mp, reader
}

// collectMetrics collects metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

// findMetricByName finds a metric by name in the collected metrics.
func findMetricByName(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		cfg  HTTPMetricsConfig
	}{
		{"disabled", HTTPMetricsConfig{Enabled: false}},
		{"nil meter provider", HTTPMetricsConfig{Enabled: true}},
		{"disabled meter provider", HTTPMetricsConfig{
			Enabled:       true,
			MeterProvider: mustDisabledMeterProvider(t),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(HTTPMetrics(tt.cfg))
			router.GET("/skus", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "ok"})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/skus", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func mustDisabledMeterProvider(t *testing.T) *telemetry.MeterProvider {
	t.Helper()
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	return mp
}

func TestHTTPMetricsWithMeter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mp, reader := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetricsWithMeter(mp.Meter("test"), true))
	router.GET("/api/v1/skus/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.POST("/api/v1/skus", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate"})
	})

	for _, id := range []string{"sku-1", "sku-2"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/skus/"+id, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	body := `{"itemName":"Widget"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/skus", strings.NewReader(body))
	req.ContentLength = int64(len(body))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)

	rm := collectMetrics(t, reader)

	t.Run("request total uses route patterns", func(t *testing.T) {
		m := findMetricByName(rm, "http_server_request_total")
		require.NotNil(t, m)
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)

		got := make(map[attribute.Distinct]int64)
		for _, dp := range sum.DataPoints {
			got[dp.Attributes.Equivalent()] = dp.Value
		}
		okSet := attribute.NewSet(
			telemetry.AttrHTTPMethod.String(http.MethodGet),
			telemetry.AttrHTTPRoute.String("/api/v1/skus/:id"),
			telemetry.AttrHTTPStatus.Int(http.StatusOK),
		)
		conflictSet := attribute.NewSet(
			telemetry.AttrHTTPMethod.String(http.MethodPost),
			telemetry.AttrHTTPRoute.String("/api/v1/skus"),
			telemetry.AttrHTTPStatus.Int(http.StatusConflict),
		)
		assert.Equal(t, int64(2), got[okSet.Equivalent()])
		assert.Equal(t, int64(1), got[conflictSet.Equivalent()])
	})

	t.Run("duration histogram", func(t *testing.T) {
		m := findMetricByName(rm, "http_server_request_duration_seconds")
		require.NotNil(t, m)
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.True(t, ok)

		var count uint64
		for _, dp := range hist.DataPoints {
			count += dp.Count
		}
		assert.Equal(t, uint64(3), count)
	})

	t.Run("request size only for bodies", func(t *testing.T) {
		m := findMetricByName(rm, "http_server_request_size_bytes")
		require.NotNil(t, m)
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		require.Len(t, hist.DataPoints, 1)
		assert.Equal(t, float64(len(body)), hist.DataPoints[0].Sum)
	})

	t.Run("active requests return to zero", func(t *testing.T) {
		m := findMetricByName(rm, "http_server_active_requests")
		require.NotNil(t, m)
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, dp := range sum.DataPoints {
			assert.Equal(t, int64(0), dp.Value)
		}
	})
}

func TestHTTPMetrics_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mp, reader := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetricsWithMeter(mp.Meter("test"), true))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/nope/123", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	m := findMetricByName(collectMetrics(t, reader), "http_server_request_total")
	require.NotNil(t, m)
	sum := m.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	route, ok := sum.DataPoints[0].Attributes.Value(telemetry.AttrHTTPRoute)
	require.True(t, ok)
	assert.Equal(t, "unknown", route.AsString())
}

func TestHTTPMetrics_WithProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	router := gin.New()
	router.Use(HTTPMetrics(HTTPMetricsConfig{MeterProvider: mp, Enabled: true, Logger: zap.NewNop()}))
	router.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"skus": 0})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	rm := collectMetrics(t, reader)
	assert.NotNil(t, findMetricByName(rm, "http_server_request_total"))
	assert.NotNil(t, findMetricByName(rm, "http_server_response_size_bytes"))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/skucatalog/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer returns a tracer provider backed by a span recorder.
func setupTestTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})
	return tp, sr
}

// tracedRouter wires the tracing chain the way the server does.
func tracedRouter(tp *sdktrace.TracerProvider, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(logger.RequestID())
	router.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "sku-catalog", TracerProvider: tp}))
	router.Use(TracingAttributeInjector())
	router.Use(SpanErrorMarker())
	router.Use(extra...)
	return router
}

func findSpan(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, span := range spans {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, attr := range span.Attributes() {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tp, sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false, ServiceName: "sku-catalog", TracerProvider: tp}))
	router.GET("/skus", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/skus", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_Enabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tp, sr := setupTestTracer(t)

	router := tracedRouter(tp)
	router.GET("/skus/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/skus/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	span := findSpan(sr.Ended(), "GET /skus/:id")
	require.NotNil(t, span, "HTTP span not found")
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestTracingAttributeInjector(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("uses request id header", func(t *testing.T) {
		tp, sr := setupTestTracer(t)
		router := tracedRouter(tp)
		router.GET("/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/stats", nil)
		req.Header.Set(logger.RequestIDHeader, "test-request-id-123")
		router.ServeHTTP(w, req)

		span := findSpan(sr.Ended(), "GET /stats")
		require.NotNil(t, span)
		v, ok := spanAttr(span, "request_id")
		require.True(t, ok, "request_id attribute not found in span")
		assert.Equal(t, "test-request-id-123", v.AsString())
	})

	t.Run("generates request id", func(t *testing.T) {
		tp, sr := setupTestTracer(t)
		router := tracedRouter(tp)
		router.GET("/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/stats", nil)
		router.ServeHTTP(w, req)

		span := findSpan(sr.Ended(), "GET /stats")
		require.NotNil(t, span)
		v, ok := spanAttr(span, "request_id")
		require.True(t, ok)
		assert.Equal(t, w.Header().Get(logger.RequestIDHeader), v.AsString())
	})
}

func TestGetRequestID_TruncatesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(logger.RequestIDHeader, strings.Repeat("r", MaxRequestIDLength+20))

	assert.Len(t, getRequestID(c), MaxRequestIDLength)

	c.Set(logger.RequestIDKey, "from-context")
	assert.Equal(t, "from-context", getRequestID(c))
}

func TestSpanErrorMarker(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		status      int
		wantCode    codes.Code
		description string
	}{
		{"not found", http.StatusNotFound, codes.Error, "Not Found"},
		{"conflict", http.StatusConflict, codes.Error, "Conflict"},
		{"validation", http.StatusBadRequest, codes.Error, "Client Error"},
		{"exhausted", http.StatusUnprocessableEntity, codes.Error, "Client Error"},
		{"success", http.StatusCreated, codes.Unset, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, sr := setupTestTracer(t)
			router := tracedRouter(tp)
			router.POST("/skus", func(c *gin.Context) {
				c.JSON(tt.status, gin.H{})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/skus", nil)
			router.ServeHTTP(w, req)
			require.Equal(t, tt.status, w.Code)

			span := findSpan(sr.Ended(), "POST /skus")
			require.NotNil(t, span)
			assert.Equal(t, tt.wantCode, span.Status().Code)
			assert.Equal(t, tt.description, span.Status().Description)
		})
	}

	t.Run("server error", func(t *testing.T) {
		tp, sr := setupTestTracer(t)
		router := tracedRouter(tp)
		router.GET("/boom", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
		router.ServeHTTP(w, req)

		span := findSpan(sr.Ended(), "GET /boom")
		require.NotNil(t, span)
		// otelgin may have set the status first; only the code is stable
		assert.Equal(t, codes.Error, span.Status().Code)
	})
}

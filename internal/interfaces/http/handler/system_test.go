package handler

import (
	"net/http"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/health", NewSystemHandler("sku-catalog", "1.2.3").Health)

	w, env := doJSON(t, engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	health := decodeData[HealthResponse](t, env)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "sku-catalog", health.Name)
	assert.Equal(t, "1.2.3", health.Version)
	assert.Equal(t, runtime.Version(), health.GoVersion)
	assert.NotEmpty(t, health.Uptime)
}

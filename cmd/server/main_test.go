package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hvac-serwis-server/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.Database.DSN = "file:main_health_test.db?mode=memory&cache=shared"

	srv, err := SetupServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid GET request",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid path",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "With query parameters",
			method:         http.MethodGet,
			path:           "/health?check=true",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Protected route without token",
			method:         http.MethodGet,
			path:           "/api/clients",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			srv.Handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMainStartupAndShutdown(t *testing.T) {
	// Setup test config
	cfg := testConfig()
	cfg.Server.Port = 8081 // Use different port for testing
	cfg.Database.DSN = "file:main_startup_test.db?mode=memory&cache=shared"

	// Test server startup
	t.Run("TestServerStartup", func(t *testing.T) {
		srv, err := SetupServer(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, srv)

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		go func() {
			_ = StartServerWithContext(ctx, srv)
		}()

		// Wait for server to start
		time.Sleep(100 * time.Millisecond)

		assert.Equal(t, ":8081", srv.Addr)
	})

	// Test configuration loading
	t.Run("TestConfigLoading", func(t *testing.T) {
		cfg := config.DefaultConfig()
		assert.NotNil(t, cfg)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	// Test server setup with invalid config
	t.Run("TestServerSetupWithInvalidConfig", func(t *testing.T) {
		// Test with nil config
		srv, err := SetupServer(nil)
		assert.Error(t, err)
		assert.Nil(t, srv)

		// Test with invalid port
		invalidCfg := testConfig()
		invalidCfg.Server.Port = 0
		srv, err = SetupServer(invalidCfg)
		assert.Error(t, err)
		assert.Nil(t, srv)
	})
}

package config_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"pos-kemasan/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("MAIN_ROUTES", "")

	cfg := config.Load()

	assert.Equal(t, 8*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "/api", cfg.MainRoutes)
	assert.Equal(t, time.Minute, cfg.ReportCacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "3600")
	t.Setenv("REPORT_CACHE_TTL", "5m")
	t.Setenv("LOW_STOCK_RECIPIENTS", "gudang@pos.com, owner@pos.com ,")
	t.Setenv("ALLOWED_ORIGINS", "https://kasir.pos.com")
	t.Setenv("SNOWFLAKE_NODE", "7")

	cfg := config.Load()

	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, []string{"gudang@pos.com", "owner@pos.com"}, cfg.LowStockRecipients)
	assert.True(t, cfg.AllowedOrigins["https://kasir.pos.com"])
	assert.False(t, cfg.AllowedOrigins["http://localhost:5173"])
	assert.EqualValues(t, 7, cfg.SnowflakeNode)
}

func TestSetupCORS(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://kasir.pos.com")
	cfg := config.Load()

	app := fiber.New()
	cfg.SetupCORS(app)
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(fiber.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://kasir.pos.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://kasir.pos.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestValidateRejectsDefaultSecretsInProduction(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "development keeps defaults", env: map[string]string{"APP_ENV": "development"}},
		{
			name:    "production default jwt secret",
			env:     map[string]string{"APP_ENV": "production", "ADMIN_PASSWORD": "kuat-sekali"},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "production default admin password",
			env:     map[string]string{"APP_ENV": "prod", "JWT_SECRET": "rahasia-produksi"},
			wantErr: "ADMIN_PASSWORD",
		},
		{
			name: "production with both set",
			env:  map[string]string{"APP_ENV": "production", "JWT_SECRET": "rahasia-produksi", "ADMIN_PASSWORD": "kuat-sekali"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("ADMIN_PASSWORD", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			err := config.Load().Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

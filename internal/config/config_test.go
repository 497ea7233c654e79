package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("SEED_PASSWORD", "seed-password")
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, matching.ScoringPairs, cfg.Matching.ScoringMode)
	assert.Equal(t, "12000", cfg.Payroll.DefaultDailyRate.String())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://tscs.kln.ac.lk, http://localhost:5173 ,")
	t.Setenv("MATCH_SCORING_MODE", "distinct")
	t.Setenv("JWT_ACCESS_EXPIRATION_TIME", "30m")
	t.Setenv("PAYROLL_DEFAULT_DAILY_RATE", "12800.50")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://tscs.kln.ac.lk", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, matching.ScoringDistinct, cfg.Matching.ScoringMode)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiration)
	assert.Equal(t, "12800.5", cfg.Payroll.DefaultDailyRate.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET_KEY": ""}},
		{name: "missing seed password", env: map[string]string{"SEED_PASSWORD": ""}},
		{name: "bad port", env: map[string]string{"APP_PORT": "eighty"}},
		{name: "bad expiration", env: map[string]string{"JWT_ACCESS_EXPIRATION_TIME": "soon"}},
		{name: "unknown scoring mode", env: map[string]string{"MATCH_SCORING_MODE": "weighted"}},
		{name: "bad daily rate", env: map[string]string{"PAYROLL_DEFAULT_DAILY_RATE": "twelve"}},
		{name: "zero daily rate", env: map[string]string{"PAYROLL_DEFAULT_DAILY_RATE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := &Config{App: AppConfig{LogLevel: "DEBUG"}}
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg.App.LogLevel = "verbose"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Helper function tests
// ---------------------------------------------------------------------------

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string // nil = don't set; pointer to distinguish "" from unset
		fallback string
		want     string
	}{
		{name: "returns fallback when unset", key: "LEADVINE_TEST_GETENV_UNSET", setVal: nil, fallback: "default", want: "default"},
		{name: "returns env value when set", key: "LEADVINE_TEST_GETENV_SET", setVal: strPtr("custom"), fallback: "default", want: "custom"},
		{name: "returns fallback when empty string", key: "LEADVINE_TEST_GETENV_EMPTY", setVal: strPtr(""), fallback: "default", want: "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got := getEnv(tc.key, tc.fallback)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback int
		want     int
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "LEADVINE_TEST_INT_UNSET", setVal: nil, fallback: 42, want: 42},
		{name: "parses valid int", key: "LEADVINE_TEST_INT_VALID", setVal: strPtr("7"), fallback: 42, want: 7},
		{name: "error on garbage", key: "LEADVINE_TEST_INT_BAD", setVal: strPtr("seven"), fallback: 42, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvInt(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "LEADVINE_TEST_DUR_UNSET", setVal: nil, fallback: time.Minute, want: time.Minute},
		{name: "parses valid duration", key: "LEADVINE_TEST_DUR_VALID", setVal: strPtr("30s"), fallback: time.Minute, want: 30 * time.Second},
		{name: "error on garbage", key: "LEADVINE_TEST_DUR_BAD", setVal: strPtr("soon"), fallback: time.Minute, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvDuration(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Run("returns fallback when unset", func(t *testing.T) {
		got := getEnvList("LEADVINE_TEST_LIST_UNSET", []string{"a", "b"})
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("splits and trims", func(t *testing.T) {
		t.Setenv("LEADVINE_TEST_LIST_SET", "http://a.test, http://b.test ,")
		got := getEnvList("LEADVINE_TEST_LIST_SET", nil)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, got)
	})
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxConns)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, float64(50), cfg.RateLimit.PerSecond)
		assert.Equal(t, 100, cfg.RateLimit.Burst)
	})

	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv("LEADVINE_DB_HOST", "db.internal")
		t.Setenv("LEADVINE_DB_PORT", "5433")
		t.Setenv("LEADVINE_SERVER_ADDR", ":9090")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, ":9090", cfg.Server.Addr)
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		t.Setenv("LEADVINE_DB_PORT", "70000")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LEADVINE_DB_PORT")
	})

	t.Run("rejects zero max conns", func(t *testing.T) {
		t.Setenv("LEADVINE_DB_MAX_CONNS", "0")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "leadvine",
		Password: "secret",
		DBName:   "leadvine_dev",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=leadvine password=secret dbname=leadvine_dev sslmode=disable",
		db.DSN(),
	)
}

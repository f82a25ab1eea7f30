package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/lilibridge/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 90, cfg.Server.WriteTimeout)
		require.Equal(t, "https://backend-lili-demo.limitless-tech.ai/api", cfg.Lili.BaseURL)
		require.Equal(t, "213", cfg.Lili.WorkflowID)
		require.Equal(t, 60, cfg.Lili.Timeout)
		require.Equal(t, 40, cfg.Stream.ChunkSize)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("SERVER_READ_TIMEOUT", "15")
		t.Setenv("SERVER_WRITE_TIMEOUT", "120")
		t.Setenv("LILI_API_BASE", "http://lili.local/api/")
		t.Setenv("LILI_WORKFLOW_ID", "999")
		t.Setenv("LILI_TIMEOUT_SECONDS", "5")
		t.Setenv("STREAM_CHUNK_SIZE", "8")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, 15, cfg.Server.ReadTimeout)
		require.Equal(t, 120, cfg.Server.WriteTimeout)
		require.Equal(t, "http://lili.local/api/", cfg.Lili.BaseURL)
		require.Equal(t, "999", cfg.Lili.WorkflowID)
		require.Equal(t, 5, cfg.Lili.Timeout)
		require.Equal(t, 8, cfg.Stream.ChunkSize)
	})
}

package config

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.ServerAddr)
	require.Equal(t, ".", cfg.SaveDir)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	require.Equal(t, "none", cfg.TraceExporter)

	limit, err := cfg.MaxBodyBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(32_000_000), limit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("SAVE_DIR", "/tmp/out")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MAX_BODY_SIZE", "4MiB")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
	require.Equal(t, "/tmp/out", cfg.SaveDir)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	require.Equal(t, "debug", cfg.LogLevel)

	limit, err := cfg.MaxBodyBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(4<<20), limit)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad level":        {"LOG_LEVEL": "loud"},
		"otlp no endpoint": {"TRACE_EXPORTER": "otlp"},
		"bad body size":    {"MAX_BODY_SIZE": "lots"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			t.Chdir(t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig(context.Background())
			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}
}

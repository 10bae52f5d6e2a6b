package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	// Web server
	ServerAddr       string `mapstructure:"SERVER_ADDR" validate:"required"`
	MaxBodySize      string `mapstructure:"MAX_BODY_SIZE" validate:"required"`
	CORSAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`

	// Root directory for /save output
	SaveDir string `mapstructure:"SAVE_DIR" validate:"required"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`

	// Tracing
	TraceExporter string `mapstructure:"TRACE_EXPORTER" validate:"oneof=none stdout otlp"`
	OTLPEndpoint  string `mapstructure:"OTLP_ENDPOINT" validate:"required_if=TraceExporter otlp"`
	OTLPInsecure  bool   `mapstructure:"OTLP_INSECURE"`
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, part := range strings.Split(c.CORSAllowOrigins, ",") {
		if v := strings.TrimSpace(part); v != "" {
			origins = append(origins, v)
		}
	}
	return origins
}

// MaxBodyBytes returns MAX_BODY_SIZE in bytes.
func (c Config) MaxBodyBytes() (uint64, error) {
	return humanize.ParseBytes(c.MaxBodySize)
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	typ := reflect.TypeOf(c)
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			_ = viper.BindEnv(tag)
		}
	}
}

// LoadConfig reads the environment, optionally seeded from a .env file.
func LoadConfig(ctx context.Context) (*Config, error) {
	// A missing .env is fine; real environment variables win either way.
	_ = godotenv.Load()

	bindEnv(Config{})
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDR", ":8000")
	viper.SetDefault("MAX_BODY_SIZE", "32MB")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("SAVE_DIR", ".")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("TRACE_EXPORTER", "none")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.TraceExporter = strings.ToLower(strings.TrimSpace(cfg.TraceExporter))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	limit, err := cfg.MaxBodyBytes()
	if err != nil {
		return nil, fmt.Errorf("validate config: MAX_BODY_SIZE: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"addr":           cfg.ServerAddr,
		"save_dir":       cfg.SaveDir,
		"max_body":       humanize.Bytes(limit),
		"trace_exporter": cfg.TraceExporter,
	}).Debug("Loaded configuration")

	return &cfg, nil
}

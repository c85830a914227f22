// Package config loads cutline settings through viper and validates them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RemoteConfig holds configuration for the remote control server.
type RemoteConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required,hostname_port"`
}

// Config holds all runtime configuration for a cutline session.
// Values are populated from .cutline.yaml, CUTLINE_* env vars, and CLI flags.
type Config struct {
	Zoom            int          `mapstructure:"zoom" validate:"min=1,max=6"`
	FPS             int          `mapstructure:"fps" validate:"min=1,max=240"`
	EdgeThresholdPx float64      `mapstructure:"edge_threshold_px" validate:"gte=0"`
	EdgeMaxSpeedPx  float64      `mapstructure:"edge_max_speed_px" validate:"gte=0"`
	FollowPaddingPx float64      `mapstructure:"follow_padding_px" validate:"gte=0"`
	LogLevel        string       `mapstructure:"log_level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFile         string       `mapstructure:"log_file"`
	TelemetryFile   string       `mapstructure:"telemetry_file"`
	Remote          RemoteConfig `mapstructure:"remote"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("zoom", 3)
	viper.SetDefault("fps", 60)
	viper.SetDefault("edge_threshold_px", 48.0)
	viper.SetDefault("edge_max_speed_px", 24.0)
	viper.SetDefault("follow_padding_px", 50.0)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")
	viper.SetDefault("telemetry_file", "")
	viper.SetDefault("remote.enabled", false)
	viper.SetDefault("remote.addr", "127.0.0.1:7480")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints and reports all
// violations at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

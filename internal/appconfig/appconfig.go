// Package appconfig loads the cotroute binary's own application
// configuration (log settings, metrics listener, default routing
// document path) — distinct from the domain routing document
// compiled by routeconfig, which describes routes rather than how the
// binary itself runs.
package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/tak-mesh/cot-router/internal/logging"
)

// Config is the cotroute binary's application configuration.
type Config struct {
	Log     logging.Config `mapstructure:"log"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Routing RoutingConfig  `mapstructure:"routing"`
}

// MetricsConfig controls the Prometheus exposition listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// RoutingConfig points at the domain routing document this binary
// compiles on startup.
type RoutingConfig struct {
	ConfigPath string `mapstructure:"config_path"`
}

// Load loads configuration from an optional file at configPath,
// environment variables (prefixed COTROUTE_, with "." replaced by
// "_"), and defaults, in that order of increasing precedence being
// reversed: file and env override defaults, env overrides file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COTROUTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")

			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("appconfig: reading %s: %w", configPath, err)
			}
		}
		// A missing file at configPath is not an error: defaults and
		// environment variables still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("appconfig: unmarshal: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("routing.config_path", "routes.yaml")
}

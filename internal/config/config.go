// Package config loads client settings from defaults, an optional YAML
// file under the user config directory, and DISHLY_* environment
// variables (highest precedence).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to reach its collaborators.
type Config struct {
	// APIBaseURL is the recipe backend, e.g. "http://localhost:8000".
	APIBaseURL string `mapstructure:"api_base_url"`

	// FirebaseAPIKey is the identity provider's web API key. Auth is
	// disabled in the UI when empty.
	FirebaseAPIKey string `mapstructure:"firebase_api_key"`

	// IdentityEndpoint overrides the identity provider base URL. Mainly
	// for tests and emulators; empty means the public endpoint.
	IdentityEndpoint string `mapstructure:"identity_endpoint"`

	// StatePath is the localStorage-analog file (token, theme).
	StatePath string `mapstructure:"state_path"`

	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`

	// HTTPTimeout bounds every backend and identity request.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Dir returns the dishly config directory, following the platform's user
// config dir convention.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ".dishly"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dishly")
}

// Load reads the configuration. A missing config file is fine; a malformed
// one is not.
func Load() (*Config, error) {
	dir := Dir()

	v := viper.New()
	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("firebase_api_key", "")
	v.SetDefault("identity_endpoint", "")
	v.SetDefault("state_path", filepath.Join(dir, "state.json"))
	v.SetDefault("log_file", filepath.Join(dir, "dishly.log"))
	v.SetDefault("log_level", "normal")
	v.SetDefault("http_timeout", 15*time.Second)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("DISHLY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

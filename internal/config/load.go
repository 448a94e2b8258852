package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "EMAILWRITER"

// Default values applied before files and environment variables are read.
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultReadTimeoutSeconds     = 15
	DefaultWriteTimeoutSeconds    = 120
	DefaultShutdownTimeoutSeconds = 10
	DefaultMaxRetries             = 3
	DefaultRetryDelaySeconds      = 1
	DefaultMaxRetryDelaySeconds   = 10
)

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile behaves like Load but reads the given config file instead of
// searching the working directory. An empty path falls back to the search.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so keys
	// without defaults need an explicit binding.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.cors_allowed_origins",
		"llm.gemini_api_url",
		"llm.gemini_api_key",
		"llm.max_retries",
		"llm.retry_delay_seconds",
		"llm.max_retry_delay_seconds",
		"llm.request_timeout_seconds",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.read_timeout_seconds", DefaultReadTimeoutSeconds)
	v.SetDefault("server.write_timeout_seconds", DefaultWriteTimeoutSeconds)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)

	v.SetDefault("llm.max_retries", DefaultMaxRetries)
	v.SetDefault("llm.retry_delay_seconds", DefaultRetryDelaySeconds)
	v.SetDefault("llm.max_retry_delay_seconds", DefaultMaxRetryDelaySeconds)
	v.SetDefault("llm.request_timeout_seconds", 0)
}

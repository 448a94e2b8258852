package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	ReadTimeoutSeconds     int `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds    int `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`

	// CORSAllowedOrigins lists browser origins allowed to call the API.
	// Empty allows any origin.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"dive,required"`
}

// LLMConfig contains all LLM integration related settings.
// GeminiAPIURL and GeminiAPIKey are secrets and must never be logged.
type LLMConfig struct {
	GeminiAPIURL string `mapstructure:"gemini_api_url" validate:"required,url"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	// RetryDelaySeconds is the delay before the first retry; it doubles per retry.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1"`
	// MaxRetryDelaySeconds caps the delay between retries.
	MaxRetryDelaySeconds int `mapstructure:"max_retry_delay_seconds" validate:"gtefield=RetryDelaySeconds"`
	// RequestTimeoutSeconds bounds a whole completion including retries. 0 disables it.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

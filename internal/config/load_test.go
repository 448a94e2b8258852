package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// setupEnv sets environment variables for the duration of the test.
// An empty value unsets the variable.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		if value == "" {
			original, had := os.LookupEnv(name)
			require.NoError(t, os.Unsetenv(name))
			if had {
				t.Cleanup(func() { _ = os.Setenv(name, original) })
			}
			continue
		}
		t.Setenv(name, value)
	}
}

// TestLoadDefaults verifies that Load applies defaults for everything but the
// LLM endpoint and credential.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"EMAILWRITER_LLM_GEMINI_API_URL": testAPIURL,
		"EMAILWRITER_LLM_GEMINI_API_KEY": "test-api-key",
		"EMAILWRITER_SERVER_PORT":        "",
		"EMAILWRITER_SERVER_LOG_LEVEL":   "",
		"EMAILWRITER_LLM_MAX_RETRIES":    "",
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 3, cfg.LLM.MaxRetries, "Default retries should be 3")
	assert.Equal(t, 1, cfg.LLM.RetryDelaySeconds, "Default first retry delay should be 1s")
	assert.Equal(t, 10, cfg.LLM.MaxRetryDelaySeconds, "Default retry delay cap should be 10s")
	assert.Equal(t, 0, cfg.LLM.RequestTimeoutSeconds, "Request timeout should be disabled by default")
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"EMAILWRITER_SERVER_PORT":                 "9090",
		"EMAILWRITER_SERVER_LOG_LEVEL":            "debug",
		"EMAILWRITER_LLM_GEMINI_API_URL":          testAPIURL,
		"EMAILWRITER_LLM_GEMINI_API_KEY":          "test-api-key",
		"EMAILWRITER_LLM_MAX_RETRIES":             "5",
		"EMAILWRITER_LLM_REQUEST_TIMEOUT_SECONDS": "60",
		"EMAILWRITER_SERVER_CORS_ALLOWED_ORIGINS": "http://localhost:3000,https://mail.example.com",
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, testAPIURL, cfg.LLM.GeminiAPIURL)
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, 5, cfg.LLM.MaxRetries)
	assert.Equal(t, 60, cfg.LLM.RequestTimeoutSeconds)
	assert.Equal(t, []string{"http://localhost:3000", "https://mail.example.com"}, cfg.Server.CORSAllowedOrigins)
}

// TestLoadFromFile verifies that a YAML file is read and that environment
// variables still take precedence over it.
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`server:
  port: 7070
  log_level: warn
llm:
  gemini_api_url: ` + testAPIURL + `
  gemini_api_key: file-key
  max_retries: 2
`)
	require.NoError(t, os.WriteFile(path, content, 0600))

	setupEnv(t, map[string]string{
		"EMAILWRITER_SERVER_PORT":        "",
		"EMAILWRITER_SERVER_LOG_LEVEL":   "",
		"EMAILWRITER_LLM_GEMINI_API_URL": "",
		"EMAILWRITER_LLM_MAX_RETRIES":    "",
		"EMAILWRITER_LLM_GEMINI_API_KEY": "env-key",
	})

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, "env-key", cfg.LLM.GeminiAPIKey, "Environment should override the file")
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	valid := map[string]string{
		"EMAILWRITER_SERVER_PORT":                 "9090",
		"EMAILWRITER_SERVER_LOG_LEVEL":            "debug",
		"EMAILWRITER_LLM_GEMINI_API_URL":          testAPIURL,
		"EMAILWRITER_LLM_GEMINI_API_KEY":          "test-api-key",
		"EMAILWRITER_LLM_RETRY_DELAY_SECONDS":     "",
		"EMAILWRITER_LLM_MAX_RETRY_DELAY_SECONDS": "",
	}

	with := func(overrides map[string]string) map[string]string {
		env := make(map[string]string, len(valid))
		for k, v := range valid {
			env[k] = v
		}
		for k, v := range overrides {
			env[k] = v
		}
		return env
	}

	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Missing API key",
			envVars: with(map[string]string{"EMAILWRITER_LLM_GEMINI_API_KEY": ""}),
		},
		{
			name:    "Missing API URL",
			envVars: with(map[string]string{"EMAILWRITER_LLM_GEMINI_API_URL": ""}),
		},
		{
			name:    "Malformed API URL",
			envVars: with(map[string]string{"EMAILWRITER_LLM_GEMINI_API_URL": "not a url"}),
		},
		{
			name:    "Invalid port number",
			envVars: with(map[string]string{"EMAILWRITER_SERVER_PORT": "999999"}),
		},
		{
			name:    "Invalid log level",
			envVars: with(map[string]string{"EMAILWRITER_SERVER_LOG_LEVEL": "invalid-level"}),
		},
		{
			name:    "Negative retries",
			envVars: with(map[string]string{"EMAILWRITER_LLM_MAX_RETRIES": "-1"}),
		},
		{
			name: "Retry cap below first delay",
			envVars: with(map[string]string{
				"EMAILWRITER_LLM_RETRY_DELAY_SECONDS":     "5",
				"EMAILWRITER_LLM_MAX_RETRY_DELAY_SECONDS": "2",
			}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/redact"
)

// defaultAttemptTimeout bounds a single HTTP attempt. A timed-out attempt is a
// transport failure and is retried like any other.
const defaultAttemptTimeout = 60 * time.Second

// Client calls the Gemini generateContent endpoint. It holds no per-call
// state and is safe for concurrent use.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client

	// requestURL already carries the API key and must never be logged.
	requestURL string
	// endpoint is the redacted endpoint, safe for logs.
	endpoint string
	apiKey   string

	policy    RetryPolicy
	retryable func(error) bool
	sleep     Sleeper
	timeout   time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetryPolicy overrides the policy derived from configuration.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithRetryPredicate replaces IsRetryable.
func WithRetryPredicate(fn func(error) bool) Option {
	return func(c *Client) {
		if fn != nil {
			c.retryable = fn
		}
	}
}

// WithSleeper replaces the wait between retries.
func WithSleeper(sleep Sleeper) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// NewClient creates a Client for the endpoint and key in cfg.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration with endpoint, API key and retry settings
//   - opts: Optional overrides, mostly for tests
//
// Returns:
//   - A ready Client, or an error wrapping generation.ErrInvalidConfig
func NewClient(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIURL == "" {
		return nil, fmt.Errorf("%w: gemini API URL cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	requestURL, err := buildRequestURL(cfg.GeminiAPIURL, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	c := &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: defaultAttemptTimeout},
		requestURL: requestURL,
		endpoint:   redact.URL(cfg.GeminiAPIURL),
		apiKey:     cfg.GeminiAPIKey,
		policy:     RetryPolicyFromConfig(cfg),
		retryable:  IsRetryable,
		sleep:      sleepContext,
	}

	if cfg.RequestTimeoutSeconds > 0 {
		c.timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// buildRequestURL appends the API key as the "key" query parameter. An
// endpoint that already ends in "key=" gets the key appended verbatim.
func buildRequestURL(endpoint, apiKey string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid gemini API URL: %s", redact.String(err.Error()))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("gemini API URL must be http or https, got %q", u.Scheme)
	}

	if strings.HasSuffix(endpoint, "key=") {
		return endpoint + url.QueryEscape(apiKey), nil
	}

	q := u.Query()
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Complete sends prompt to the generation endpoint and returns the raw
// response body.
//
// Failed attempts are retried while the retry predicate allows it and the
// policy has retries left; waits between attempts honour ctx. The call
// returns a *CompletionError once it gives up.
func (c *Client) Complete(ctx context.Context, prompt string) ([]byte, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	body, err := json.Marshal(newGenerateContentRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	backoff := c.policy.Backoff()
	maxAttempts := c.policy.MaxRetries + 1

	for attempt := 1; ; attempt++ {
		c.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"endpoint", c.endpoint,
			"prompt_length", len(prompt))

		raw, err := c.post(ctx, body)
		if err == nil {
			c.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attempt,
				"response_bytes", len(raw))
			return raw, nil
		}

		c.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt,
			"error", redact.Secrets(err.Error(), c.apiKey))

		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.WarnContext(ctx, "API call cancelled, not retrying",
				"attempt", attempt,
				"ctx_err", ctxErr)
			cause := err
			if !errors.Is(err, ctxErr) {
				cause = fmt.Errorf("%w (last failure: %v)", ctxErr, err)
			}
			return nil, &CompletionError{Attempts: attempt, Cause: cause}
		}

		if !c.retryable(err) {
			c.logger.WarnContext(ctx, "Permanent error occurred, not retrying",
				"attempt", attempt)
			return nil, &CompletionError{Attempts: attempt, Cause: err}
		}

		delay, stop := backoff.Next()
		if stop {
			c.logger.WarnContext(ctx, "Maximum retry attempts reached",
				"max_retries", c.policy.MaxRetries)
			return nil, &CompletionError{Attempts: attempt, Cause: err, Exhausted: true}
		}

		c.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attempt,
			"delay", delay.String())

		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			c.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attempt,
				"ctx_err", sleepErr)
			return nil, &CompletionError{
				Attempts: attempt,
				Cause:    fmt.Errorf("%w (last failure: %v)", sleepErr, err),
			}
		}
	}
}

// post performs a single attempt. Non-2xx answers become *StatusError.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %s", redact.Secrets(err.Error(), c.apiKey))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redact.URL(urlErr.URL)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       redact.Secrets(string(snippet), c.apiKey),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	return raw, nil
}

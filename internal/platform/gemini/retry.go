package gemini

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/sethvargo/go-retry"
)

// RetryPolicy describes how failed completions are retried. Delays start at
// BaseDelay and double per retry up to MaxDelay. No jitter is applied.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy returns the policy the remote service's rate limiting is
// tuned for: 3 retries, 1s first delay, 10s cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: config.DefaultMaxRetries,
		BaseDelay:  config.DefaultRetryDelaySeconds * time.Second,
		MaxDelay:   config.DefaultMaxRetryDelaySeconds * time.Second,
	}
}

// RetryPolicyFromConfig builds a policy from LLM settings. A zero MaxRetries
// disables retrying; config.Load supplies the default of 3, so a hand-built
// LLMConfig must set it explicitly. Negative retries and non-positive delays
// fall back to DefaultRetryPolicy.
func RetryPolicyFromConfig(cfg config.LLMConfig) RetryPolicy {
	policy := DefaultRetryPolicy()

	if cfg.MaxRetries >= 0 {
		policy.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryDelaySeconds > 0 {
		policy.BaseDelay = time.Duration(cfg.RetryDelaySeconds) * time.Second
	}
	if cfg.MaxRetryDelaySeconds > 0 {
		policy.MaxDelay = time.Duration(cfg.MaxRetryDelaySeconds) * time.Second
	}
	if policy.MaxDelay < policy.BaseDelay {
		policy.MaxDelay = policy.BaseDelay
	}

	return policy
}

// Backoff returns a fresh delay schedule for one completion. Backoffs are
// stateful and must not be shared between calls.
func (p RetryPolicy) Backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	maxDelay := p.MaxDelay
	if maxDelay < base {
		maxDelay = base
	}
	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	b := retry.NewExponential(base)
	b = retry.WithCappedDuration(maxDelay, b)
	return retry.WithMaxRetries(uint64(maxRetries), b)
}

// Delays lists every delay the policy will wait, in order.
func (p RetryPolicy) Delays() []time.Duration {
	b := p.Backoff()
	var delays []time.Duration
	for {
		d, stop := b.Next()
		if stop {
			return delays
		}
		delays = append(delays, d)
	}
}

// IsRetryable reports whether a failed attempt may be retried: rate limiting
// (429), server errors (5xx) and transport-level I/O failures such as resets,
// refused connections, timeouts and DNS errors. Everything else is terminal,
// including cancellation and TLS certificate failures, which fail the same
// way on every attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests ||
			(statusErr.StatusCode >= 500 && statusErr.StatusCode <= 599)
	}

	// *url.Error satisfies net.Error itself, so judge the failure it wraps.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	if isCertificateError(err) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE)
}

func isCertificateError(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	var authorityErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	return errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// sleepContext is the default Sleeper. The wait parks only the calling
// goroutine.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

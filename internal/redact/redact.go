// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error replies. The Gemini credential travels
// in the request URL, so any transport error that echoes the URL would otherwise leak
// it; email addresses taken from the email being answered are scrubbed as well.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

// rule pairs a pattern with its replacement. Rules run in order.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rules = []rule{
	// Credential carried as a query parameter: keep the parameter name.
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},
	// Google API keys wherever they appear.
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},
	// Bearer tokens in echoed headers.
	{regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/=]{8,}`), "${1}" + RedactedCredentialPlaceholder},
	// Generic "api_key: value" style assignments.
	{regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret|password)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Secrets replaces every literal occurrence of the given secrets in input and
// then applies the pattern rules. Empty secrets are ignored.
func Secrets(input string, secrets ...string) string {
	for _, s := range secrets {
		if s == "" {
			continue
		}
		input = strings.ReplaceAll(input, s, RedactionPlaceholder)
	}
	return String(input)
}

// URL returns rawURL with its query string values removed, safe for logging.
// Unparseable input is run through String instead.
func URL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return String(rawURL)
	}

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			q.Set(k, RedactionPlaceholder)
		}
		u.RawQuery = q.Encode()
	}
	u.User = nil

	return u.String()
}

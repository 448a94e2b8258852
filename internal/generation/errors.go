package generation

import "errors"

// ErrorReplyPrefix starts every reply string that reports a failure instead of
// generated text. Callers detect failures by this prefix, not by an error value.
const ErrorReplyPrefix = "Error processing the request "

// Common errors returned by the generation package and its adapters
var (
	// ErrGenerationFailed is returned when reply generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate email reply")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during reply generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// ErrorReply renders err as a sentinel reply string.
func ErrorReply(err error) string {
	if err == nil {
		return ErrorReplyPrefix
	}
	return ErrorReplyPrefix + err.Error()
}

// IsErrorReply reports whether reply is a sentinel error string.
func IsErrorReply(reply string) bool {
	return len(reply) >= len(ErrorReplyPrefix) && reply[:len(ErrorReplyPrefix)] == ErrorReplyPrefix
}

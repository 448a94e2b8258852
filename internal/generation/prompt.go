package generation

import (
	"strings"

	"github.com/phrazzld/email-writer/internal/domain"
)

// promptPreamble is the fixed instruction block that opens every prompt.
const promptPreamble = "Generate an email reply for the following email content. " +
	"Look at the tone required and the mail body attached below. " +
	"Do not include a subject line, and do not use any text modifier symbols such as * for bold or _ for italics. " +
	"Return plain text only, in a proper email format: a greeting, the body, a closing line and a signature placeholder such as [Your Name]. " +
	"Write the single best reply to the mail. " +
	"No suggestions, no alternatives, no commentary about the reply, no extras. Just build the reply."

// Delimiters around the original email. They sit on their own lines so the
// model cannot mistake the quoted email for instructions or for its own output.
const (
	originalEmailHeader = "Original Email:"
	originalEmailOpen   = "-----BEGIN ORIGINAL EMAIL-----"
)

// BuildPrompt turns a reply request into the single instruction string sent to
// the model. The segment order is fixed: preamble, optional tone directive,
// then the original email verbatim as the trailing segment.
func BuildPrompt(req domain.EmailRequest) string {
	var b strings.Builder
	b.Grow(len(promptPreamble) + len(req.EmailContent) + 128)

	b.WriteString(promptPreamble)

	if req.HasTone() {
		b.WriteString(" Use a ")
		b.WriteString(req.NormalizedTone())
		b.WriteString(" tone.")
	}

	b.WriteString("\n\n")
	b.WriteString(originalEmailHeader)
	b.WriteString("\n")
	b.WriteString(originalEmailOpen)
	b.WriteString("\n")
	b.WriteString(req.EmailContent)

	return b.String()
}

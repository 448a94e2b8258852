package gemini

import "google.golang.org/genai"

// generateContentRequest is the request body accepted by the generateContent
// endpoint. Only the prompt text is sent; generation settings stay server-side.
type generateContentRequest struct {
	Contents []*genai.Content `json:"contents"`
}

// newGenerateContentRequest wraps prompt in a single content with a single
// text part.
func newGenerateContentRequest(prompt string) generateContentRequest {
	return generateContentRequest{
		Contents: []*genai.Content{
			{
				Parts: []*genai.Part{
					{Text: prompt},
				},
			},
		},
	}
}

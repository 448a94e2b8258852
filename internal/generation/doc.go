// Package generation provides the port between the email writer core and
// external AI/LLM services used for content generation. It owns the prompt
// that is sent to the model and the Generator interface that adapters such as
// the Gemini client implement, so the rest of the application never depends
// on a specific external service.
package generation

// Package gemini provides an implementation of the generation.Generator interface
// backed by Google's Gemini generateContent REST endpoint.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's reply generation to the external Gemini service
// without exposing the details of that service to the rest of the application.
//
// Key components:
//
// 1. Client:
//   - Builds the {"contents":[{"parts":[{"text": ...}]}]} payload from genai types
//   - POSTs it to the configured endpoint with the API key as the "key" query parameter
//   - Retries 429, 5xx and transport failures with capped exponential backoff
//
// 2. Extraction:
//   - Walks candidates[0].content.parts[0].text in the raw response document
//   - Turns every shape problem into an "Error processing the request " reply
//
// 3. Generator:
//   - Implements generation.Generator: prompt, completion, extraction
//   - Always returns a string to its caller
//
// The API key is part of the request URL, so URLs and transport errors are
// redacted before they are logged or surfaced.
package gemini

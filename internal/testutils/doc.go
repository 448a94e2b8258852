// Package testutils provides testing utilities shared by the email-writer
// packages.
//
// This package contains helpers for:
//  1. Running a fake Gemini generateContent endpoint (FakeGemini)
//  2. Setting up test servers for API testing
//  3. Asserting API responses
//
// # Fake Gemini endpoint
//
//	// Answer 503 twice, then succeed with "Hello" forever:
//	fake := testutils.NewFakeGemini(t, "Hello",
//	    http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK)
//
//	cfg.GeminiAPIURL = fake.URL
//	...
//	assert.Equal(t, 3, fake.Calls())
//	assert.Contains(t, fake.Prompts()[0], "Original Email:")
package testutils

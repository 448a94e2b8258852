package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is one call received by a FakeGemini.
type RecordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Body        []byte
}

// Prompt returns contents[0].parts[0].text from the request body, or "" if
// the body does not have that shape.
func (r RecordedRequest) Prompt() string {
	var payload struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(r.Body, &payload); err != nil {
		return ""
	}
	if len(payload.Contents) == 0 || len(payload.Contents[0].Parts) == 0 {
		return ""
	}
	return payload.Contents[0].Parts[0].Text
}

// FakeGemini is an httptest server that answers like the generateContent
// endpoint. Statuses are served in order and the last one repeats; a 200
// carries GeminiReplyBody(reply).
type FakeGemini struct {
	*httptest.Server

	reply    string
	statuses []int

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeGemini starts a FakeGemini and closes it when the test ends. With no
// statuses every call succeeds.
func NewFakeGemini(t *testing.T, reply string, statuses ...int) *FakeGemini {
	t.Helper()

	if len(statuses) == 0 {
		statuses = []int{http.StatusOK}
	}

	f := &FakeGemini{reply: reply, statuses: statuses}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)

	return f
}

func (f *FakeGemini) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	n := len(f.requests)
	f.mu.Unlock()

	status := f.statuses[len(f.statuses)-1]
	if n <= len(f.statuses) {
		status = f.statuses[n-1]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = io.WriteString(w, GeminiReplyBody(f.reply))
		return
	}
	_, _ = io.WriteString(w, GeminiErrorBody(status, "scripted failure"))
}

// Calls returns the number of requests received so far.
func (f *FakeGemini) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns a copy of every request received so far.
func (f *FakeGemini) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// Prompts returns the prompt text of every request received so far.
func (f *FakeGemini) Prompts() []string {
	requests := f.Requests()
	prompts := make([]string, len(requests))
	for i, r := range requests {
		prompts[i] = r.Prompt()
	}
	return prompts
}

// GeminiReplyBody is the smallest generateContent response carrying text.
func GeminiReplyBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	return string(body)
}

// GeminiErrorBody mimics the error document Google APIs return.
func GeminiErrorBody(status int, message string) string {
	body, _ := json.Marshal(map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
			"status":  http.StatusText(status),
		},
	})
	return string(body)
}

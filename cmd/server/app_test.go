package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/email-writer/internal/api/shared"
	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/platform/gemini"
	"github.com/phrazzld/email-writer/internal/platform/logger"
	"github.com/phrazzld/email-writer/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "server-test-key"

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func createTestConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ReadTimeoutSeconds:     5,
			WriteTimeoutSeconds:    5,
			ShutdownTimeoutSeconds: 2,
		},
		LLM: config.LLMConfig{
			GeminiAPIURL:         upstreamURL,
			GeminiAPIKey:         testAPIKey,
			MaxRetries:           3,
			RetryDelaySeconds:    1,
			MaxRetryDelaySeconds: 10,
		},
	}
}

func newTestApp(t *testing.T, upstreamURL string) (*application, *logger.TestLogBuffer) {
	t.Helper()

	log, buf := logger.NewTestLogger()
	app, err := newApplication(createTestConfig(upstreamURL), log, gemini.WithSleeper(noSleep))
	require.NoError(t, err)
	return app, buf
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()

	_, err := newApplication(nil, log)
	assert.Error(t, err, "nil config should be rejected")

	_, err = newApplication(createTestConfig("https://example.test/generate"), nil)
	assert.Error(t, err, "nil logger should be rejected")

	cfg := createTestConfig("https://example.test/generate")
	cfg.LLM.GeminiAPIKey = ""
	_, err = newApplication(cfg, log)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	app, err := newApplication(createTestConfig("https://example.test/generate"), log)
	require.NoError(t, err)
	assert.NotNil(t, app.generator)
}

func TestRouterGenerateEndToEnd(t *testing.T) {
	t.Parallel()

	upstream := testutils.NewFakeGemini(t, "Hello")
	app, logBuf := newTestApp(t, upstream.URL)
	srv := testutils.CreateTestServer(t, app.setupRouter())

	resp, err := http.Post(srv.URL+"/api/email/generate", "application/json",
		strings.NewReader(`{"emailContent":"Can you send the slides?","tone":"professional"}`))
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)

	testutils.AssertTextResponse(t, resp, http.StatusOK, "Hello")
	assert.NotEmpty(t, resp.Header.Get(shared.TraceIDHeader))
	assert.Equal(t, 1, upstream.Calls())
	require.Len(t, upstream.Prompts(), 1)
	assert.Contains(t, upstream.Prompts()[0], "Can you send the slides?")
	assert.Contains(t, upstream.Prompts()[0], "Use a professional tone.")
	assert.NotContains(t, logBuf.String(), testAPIKey, "The API key must never be logged")
}

func TestRouterUpstreamRateLimited(t *testing.T) {
	t.Parallel()

	upstream := testutils.NewFakeGemini(t, "unused", http.StatusTooManyRequests)
	app, _ := newTestApp(t, upstream.URL)
	srv := testutils.CreateTestServer(t, app.setupRouter())

	resp, err := http.Post(srv.URL+"/api/email/generate", "application/json",
		strings.NewReader(`{"emailContent":"Hello"}`))
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)

	errResp := testutils.AssertErrorResponse(t, resp, http.StatusServiceUnavailable, "temporarily unavailable")
	assert.NotContains(t, errResp.Error, testAPIKey)
	assert.Equal(t, 4, upstream.Calls(), "Initial attempt plus three retries")
}

func TestRouterUpstreamRejectsRequest(t *testing.T) {
	t.Parallel()

	upstream := testutils.NewFakeGemini(t, "unused", http.StatusBadRequest)
	app, _ := newTestApp(t, upstream.URL)
	srv := testutils.CreateTestServer(t, app.setupRouter())

	resp, err := http.Post(srv.URL+"/api/email/generate", "application/json",
		strings.NewReader(`{"emailContent":"Hello"}`))
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)

	testutils.AssertErrorResponse(t, resp, http.StatusBadGateway, "Reply generation failed")
	assert.Equal(t, 1, upstream.Calls(), "Client errors are not retried")
}

func TestRouterRejectsEmptyEmail(t *testing.T) {
	t.Parallel()

	upstream := testutils.NewFakeGemini(t, "unused")
	app, _ := newTestApp(t, upstream.URL)
	srv := testutils.CreateTestServer(t, app.setupRouter())

	resp, err := http.Post(srv.URL+"/api/email/generate", "application/json",
		strings.NewReader(`{"emailContent":"  ","tone":"formal"}`))
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)

	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "Email content is required")
	assert.Zero(t, upstream.Calls())
}

func TestRouterRoutes(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "https://example.test/generate")
	router := app.setupRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		preflight      bool
		expectedStatus int
		expectedBody   string
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK, expectedBody: "OK"},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", expectedStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/email/generate", expectedStatus: http.StatusMethodNotAllowed},
		{
			name:   "preflight",
			method: http.MethodOptions,
			path:   "/api/email/generate",
			headers: map[string]string{
				"Access-Control-Request-Method": http.MethodPost,
			},
			preflight: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			if tc.preflight {
				assert.GreaterOrEqual(t, w.Code, http.StatusOK)
				assert.Less(t, w.Code, http.StatusMultipleChoices)
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
				return
			}

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, w.Body.String())
			}
			assert.NotEmpty(t, w.Header().Get(shared.TraceIDHeader))
		})
	}
}

func TestServeGracefulShutdown(t *testing.T) {
	t.Parallel()

	app, logBuf := newTestApp(t, "https://example.test/generate")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	healthURL := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond, "Server should become healthy")

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, logBuf.String(), "Server shutdown completed")
}

func TestStartHTTPServerPortInUse(t *testing.T) {
	t.Parallel()

	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer taken.Close()

	app, _ := newTestApp(t, "https://example.test/generate")
	app.config.Server.Port = taken.Addr().(*net.TCPAddr).Port

	err = app.startHTTPServer(context.Background(), app.setupRouter())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

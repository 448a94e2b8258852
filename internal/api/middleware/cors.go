package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/phrazzld/email-writer/internal/api/shared"
)

const corsMaxAgeSeconds = 3600

// NewCORSMiddleware answers browser preflight requests and adds CORS headers
// to cross-origin responses. An empty origin list, or one containing "*",
// allows any origin. The trace ID header is exposed so the browser client
// can read it.
func NewCORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins = append(origins, strings.TrimSuffix(strings.TrimSpace(o), "/"))
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         corsMaxAgeSeconds,
	})
}

// Package middleware holds the HTTP middleware shared by the API router:
// per-request trace IDs with request logging, and CORS handling for the
// browser front-end.
package middleware

// Package httpserver wraps net/http.Server with graceful shutdown,
// signal handling, and health-check endpoints.
package httpserver

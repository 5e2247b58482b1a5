// Package ratelimit provides fixed-window request rate limiting for the
// public HTTP surface (webhook deliveries, signup, invitation checks).
//
// A Limiter counts requests per key within a rolling window using a
// pluggable Store: an in-memory store for single-process deployments and
// tests, and a redis store for multi-instance deployments. The HTTP
// middleware fails open - storage errors never take the endpoint down.
package ratelimit

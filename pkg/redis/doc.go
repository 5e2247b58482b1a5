// Package redis provides the redis client connector used by the
// rate-limit store, with retrying connection setup and a healthcheck
// for readiness probes.
package redis

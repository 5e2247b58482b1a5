// Package mongo provides the document-store client used by all
// persistence layers: connection setup with retry, a health check for
// readiness probes, and a Transactor that runs multi-document callbacks
// inside a single server-side transaction.
package mongo

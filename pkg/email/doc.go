// Package email defines the outbound email capability and its
// implementations: a Postmark-backed sender for production and a
// filesystem sender for development.
//
// Email delivery is always best-effort from the caller's point of view:
// workflows log failures but never roll back already-committed state
// because an email could not be sent.
package email

// Package tenant holds the workspace document that anchors multi-tenant
// data. The tenant carries the authoritative subscription; entitlement
// checks and billing updates both resolve through it.
package tenant

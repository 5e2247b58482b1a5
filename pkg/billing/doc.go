// Package billing prices plan purchases and reconciles payment-provider
// webhook events against tenant subscriptions. The payment reference is
// the idempotency key: replaying an event converges on the same
// subscription state and never double-spends a promo code.
package billing

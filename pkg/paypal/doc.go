// Package paypal implements the subset of the PayPal Orders v2 API
// used at checkout: OAuth client-credentials auth, order creation, and
// order capture.
package paypal

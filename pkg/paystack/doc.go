// Package paystack provides webhook signature verification and a thin
// API client for the Paystack payment provider.
package paystack

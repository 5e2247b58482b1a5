// Package billing exposes the payment HTTP surface: the provider
// webhook endpoint, buyer checkout, and the tenant access-matrix
// endpoint.
package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the billing
// module. Each service is optional and only mounted when provided.
type RouterOptions struct {
	Webhook  Mountable
	Checkout Mountable
	Access   Mountable

	// RateLimit wraps the public checkout routes when set. Webhook
	// deliveries are never rate limited so provider retries are not
	// dropped.
	RateLimit func(http.Handler) http.Handler
}

// Router creates the billing module router.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Webhook != nil {
		r.Mount("/webhooks", opts.Webhook.Handle())
	}
	if opts.Checkout != nil {
		h := opts.Checkout.Handle()
		if opts.RateLimit != nil {
			h = opts.RateLimit(h)
		}
		r.Mount("/checkout", h)
	}
	if opts.Access != nil {
		r.Mount("/tenants", opts.Access.Handle())
	}

	return r
}

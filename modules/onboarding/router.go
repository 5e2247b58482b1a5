// Package onboarding exposes the account and workspace HTTP surface:
// tenant creation, invitation validation and completion, and
// self-serve signup.
package onboarding

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the onboarding
// module. Each service is optional and only mounted when provided.
type RouterOptions struct {
	Tenants     Mountable
	Invitations Mountable
	Signup      Mountable

	// RateLimit wraps the public, unauthenticated routes when set:
	// signup and the invitation endpoints.
	RateLimit func(http.Handler) http.Handler
}

// Router creates the onboarding module router.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	wrap := func(h http.Handler) http.Handler {
		if opts.RateLimit != nil {
			return opts.RateLimit(h)
		}
		return h
	}

	if opts.Tenants != nil {
		r.Mount("/tenants", opts.Tenants.Handle())
	}
	if opts.Invitations != nil {
		r.Mount("/invitations", wrap(opts.Invitations.Handle()))
	}
	if opts.Signup != nil {
		r.Mount("/signup", wrap(opts.Signup.Handle()))
	}

	return r
}

package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrikit/agrikit/pkg/logger"
	"github.com/agrikit/agrikit/pkg/paystack"
	"github.com/agrikit/agrikit/pkg/promo"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/tenant"
	"github.com/agrikit/agrikit/pkg/user"
)

// Transactor runs a callback inside one atomic commit. Satisfied by
// the document-store session transactor in production.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Outcome tells the HTTP layer what happened to an acknowledged event.
type Outcome struct {
	// Applied is true when a subscription was activated.
	Applied bool

	// Reason explains a no-op acknowledgement.
	Reason string
}

// Reconciler applies verified payment events to tenant subscriptions.
type Reconciler struct {
	secret   string
	tenants  tenant.Store
	profiles user.Store
	promos   *promo.Ledger
	tx       Transactor
	log      *slog.Logger
	now      func() time.Time
}

// ReconcilerOption configures optional reconciler collaborators.
type ReconcilerOption func(*Reconciler)

// WithClock overrides the reconciler clock. Intended for tests.
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) { r.now = now }
}

// NewReconciler creates a webhook reconciler. The secret is the
// provider webhook signing key.
func NewReconciler(
	secret string,
	tenants tenant.Store,
	profiles user.Store,
	promos *promo.Ledger,
	tx Transactor,
	log *slog.Logger,
	opts ...ReconcilerOption,
) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	r := &Reconciler{
		secret:   secret,
		tenants:  tenants,
		profiles: profiles,
		promos:   promos,
		tx:       tx,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleWebhook verifies, parses, and applies one webhook delivery.
//
// Error classes map to transport responses: ErrSignatureMismatch means
// reject unauthenticated, ErrMalformedPayload and ErrMissingMetadata
// mean reject permanently, any other error means the provider should
// retry. A nil error always means the event is settled and must be
// acknowledged, including no-op outcomes.
func (r *Reconciler) HandleWebhook(ctx context.Context, payload []byte, signature string) (Outcome, error) {
	if err := paystack.VerifySignature(r.secret, payload, signature); err != nil {
		return Outcome{}, ErrSignatureMismatch
	}

	ev, err := ParseEvent(payload)
	if err != nil {
		return Outcome{}, err
	}
	if ev.Type != EventChargeSuccess {
		r.log.DebugContext(ctx, "ignoring webhook event", logger.EventType(ev.Type))
		return Outcome{Reason: "event type ignored"}, nil
	}

	return r.applyCharge(ctx, ev)
}

func (r *Reconciler) applyCharge(ctx context.Context, ev *Event) (Outcome, error) {
	log := r.log.With(
		logger.PaymentRef(ev.Reference),
		logger.TenantID(ev.Metadata.TenantID),
	)

	var outcome Outcome
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Reset per attempt; the driver may re-run the callback.
		outcome = Outcome{}

		t, err := r.tenants.GetByID(ctx, ev.Metadata.TenantID)
		if errors.Is(err, tenant.ErrTenantNotFound) {
			// The provider cannot fix an unknown tenant by retrying,
			// so settle the event and leave a trace for operators.
			log.ErrorContext(ctx, "payment received for unknown tenant")
			outcome = Outcome{Reason: "tenant not found"}
			return nil
		}
		if err != nil {
			return fmt.Errorf("load tenant: %w", err)
		}

		sub, err := subscription.ActivatePaidPlan(ev.Metadata.PlanID, ev.Metadata.BillingCycle, r.now())
		if err != nil {
			return fmt.Errorf("activate plan: %w", err)
		}
		if err := r.tenants.UpdateSubscription(ctx, t.ID, sub); err != nil {
			return fmt.Errorf("update tenant subscription: %w", err)
		}

		// Older clients read the copy on the owner profile.
		if err := r.profiles.SetSubscription(ctx, t.OwnerUserID, sub); err != nil {
			if !errors.Is(err, user.ErrProfileNotFound) {
				return fmt.Errorf("mirror subscription to owner: %w", err)
			}
			log.WarnContext(ctx, "owner profile missing, subscription mirror skipped",
				logger.UserID(t.OwnerUserID))
		}

		if ev.Metadata.PromoCode != "" {
			res, err := r.promos.Apply(ctx, ev.Metadata.PromoCode, ev.Reference)
			if err != nil {
				if !promo.IsNotFound(err) {
					return fmt.Errorf("apply promo code: %w", err)
				}
				log.WarnContext(ctx, "payment referenced unknown promo code",
					slog.String("promo_code", ev.Metadata.PromoCode))
			} else if res != promo.Applied {
				log.InfoContext(ctx, "promo code not applied",
					slog.String("promo_code", ev.Metadata.PromoCode),
					slog.String("result", string(res)))
			}
		}

		outcome = Outcome{Applied: true}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	if outcome.Applied {
		log.InfoContext(ctx, "subscription activated from payment",
			slog.String("plan_id", string(ev.Metadata.PlanID)),
			slog.String("billing_cycle", string(ev.Metadata.BillingCycle)))
	}
	return outcome, nil
}

package promo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ApplyResult is the outcome of a ledger application.
type ApplyResult string

const (
	// Applied means the usage record was written and the counter
	// incremented.
	Applied ApplyResult = "applied"
	// AlreadyApplied means a record for this payment reference exists;
	// the counter was not touched again.
	AlreadyApplied ApplyResult = "already_applied"
	// LimitExceeded means the code hit its usage cap before this
	// payment; the discount is forfeited but the payment stands.
	LimitExceeded ApplyResult = "limit_exceeded"
)

// Ledger applies promo codes against payments. Apply is meant to run
// inside the caller's transaction so the counter and usage record
// commit together with the subscription change.
type Ledger struct {
	store Store
	log   *slog.Logger
}

// NewLedger creates a ledger over the given store.
func NewLedger(store Store, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{store: store, log: log}
}

// Apply records one use of the code for the payment reference. A
// reference that was already recorded returns AlreadyApplied without
// re-counting, which keeps webhook replays from double-spending the
// code. An unknown code returns ErrCodeNotFound. Expiry and active
// flags are checkout-time concerns; only the usage cap is enforced
// here because it can change between checkout and delivery.
func (l *Ledger) Apply(ctx context.Context, code, paymentRef string) (ApplyResult, error) {
	c, err := l.store.GetByCode(ctx, Normalize(code))
	if err != nil {
		return "", err
	}

	used, err := l.store.HasUsage(ctx, c.ID, paymentRef)
	if err != nil {
		return "", fmt.Errorf("check promo usage: %w", err)
	}
	if used {
		return AlreadyApplied, nil
	}

	if c.UsageLimit > 0 && c.TimesUsed >= c.UsageLimit {
		l.log.WarnContext(ctx, "promo code usage limit reached",
			slog.String("code", c.Code),
			slog.Int("usage_limit", c.UsageLimit))
		return LimitExceeded, nil
	}

	if err := l.store.RecordUsage(ctx, c.ID, paymentRef); err != nil {
		return "", fmt.Errorf("record promo usage: %w", err)
	}
	return Applied, nil
}

// IsNotFound reports whether the error means the code does not exist,
// letting callers treat bad codes as non-fatal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCodeNotFound)
}

package promo

import (
	"context"

	"github.com/google/uuid"
)

// Store defines promo persistence. Lookups with no match return
// ErrCodeNotFound; operations invoked with a transactional context must
// join that transaction.
type Store interface {
	// Create inserts a new code. Returns ErrCodeAlreadyExists when the
	// normalized code string is taken.
	Create(ctx context.Context, c *Code) error

	// GetByCode retrieves a code by its normalized string.
	GetByCode(ctx context.Context, code string) (*Code, error)

	// SetActive toggles a code on or off.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// HasUsage reports whether a usage record exists for the payment
	// reference.
	HasUsage(ctx context.Context, codeID uuid.UUID, paymentRef string) (bool, error)

	// RecordUsage inserts the usage record for the payment reference
	// and increments the code's use counter.
	RecordUsage(ctx context.Context, codeID uuid.UUID, paymentRef string) error
}

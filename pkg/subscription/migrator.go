package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/logger"
)

// ProfileLister provides the profile operations the starter migration
// needs: finding profiles without a subscription and stamping one.
type ProfileLister interface {
	// ListWithoutSubscription returns the IDs of profiles that have no
	// subscription field set.
	ListWithoutSubscription(ctx context.Context) ([]uuid.UUID, error)

	// SetSubscription writes the subscription on a profile.
	SetSubscription(ctx context.Context, userID uuid.UUID, sub Subscription) error
}

// Migrator backfills starter subscriptions onto legacy profiles.
type Migrator struct {
	profiles ProfileLister
	log      *slog.Logger
}

// NewMigrator creates a starter-plan migrator.
func NewMigrator(profiles ProfileLister, log *slog.Logger) *Migrator {
	if profiles == nil {
		panic("subscription: ProfileLister is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Migrator{profiles: profiles, log: log}
}

// DemoteToStarter assigns the starter subscription to every profile
// lacking one. Profiles that already carry a subscription are never
// touched, so the migration is idempotent: once all profiles are
// stamped, re-running processes zero records.
//
// On a write failure the migration stops and reports the number of
// records processed before the failure; the partial result is durable
// and a later run resumes where this one left off.
func (m *Migrator) DemoteToStarter(ctx context.Context) (processed int, err error) {
	ids, err := m.profiles.ListWithoutSubscription(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles without subscription: %w", err)
	}

	starter := Starter()
	for _, id := range ids {
		if err := m.profiles.SetSubscription(ctx, id, starter); err != nil {
			m.log.ErrorContext(ctx, "starter migration aborted",
				logger.UserID(id), slog.Int("processed", processed), logger.Error(err))
			return processed, fmt.Errorf("set starter subscription for %s: %w", id, err)
		}
		processed++
	}

	m.log.InfoContext(ctx, "starter migration completed", slog.Int("processed", processed))
	return processed, nil
}

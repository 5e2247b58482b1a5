package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Transactor runs a callback inside a single atomic commit. Collection
// operations performed with the callback's context join the same
// transaction, and the driver retries the whole callback on transient
// conflicts, so callbacks must be safe to re-run.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sessionTransactor struct {
	client *mongo.Client
}

// NewTransactor creates a Transactor backed by server-side sessions.
func NewTransactor(client *mongo.Client) Transactor {
	return &sessionTransactor{client: client}
}

func (t *sessionTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}

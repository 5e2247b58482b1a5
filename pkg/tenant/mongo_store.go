package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/agrikit/agrikit/pkg/subscription"
)

const tenantsCollection = "tenants"

// tenantDoc is the persistence shape of a Tenant. IDs are stored as
// canonical UUID strings to keep documents readable in the console.
type tenantDoc struct {
	ID           string                     `bson:"_id"`
	Name         string                     `bson:"name"`
	Description  string                     `bson:"description,omitempty"`
	Country      string                     `bson:"country,omitempty"`
	Region       string                     `bson:"region,omitempty"`
	City         string                     `bson:"city,omitempty"`
	Currency     string                     `bson:"currency,omitempty"`
	OwnerUserID  string                     `bson:"owner_user_id"`
	Subscription *subscription.Subscription `bson:"subscription,omitempty"`
	CreatedAt    time.Time                  `bson:"created_at"`
	UpdatedAt    time.Time                  `bson:"updated_at"`
}

func toTenantDoc(t *Tenant) *tenantDoc {
	return &tenantDoc{
		ID:           t.ID.String(),
		Name:         t.Name,
		Description:  t.Description,
		Country:      t.Country,
		Region:       t.Region,
		City:         t.City,
		Currency:     t.Currency,
		OwnerUserID:  t.OwnerUserID.String(),
		Subscription: t.Subscription,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (d *tenantDoc) toTenant() (*Tenant, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	owner, err := uuid.Parse(d.OwnerUserID)
	if err != nil {
		return nil, err
	}
	return &Tenant{
		ID:           id,
		Name:         d.Name,
		Description:  d.Description,
		Country:      d.Country,
		Region:       d.Region,
		City:         d.City,
		Currency:     d.Currency,
		OwnerUserID:  owner,
		Subscription: d.Subscription,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// MongoStore is the document-store backed tenant store.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a tenant store on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(tenantsCollection)}
}

func (s *MongoStore) Create(ctx context.Context, t *Tenant) error {
	if _, err := s.coll.InsertOne(ctx, toTenantDoc(t)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrTenantAlreadyExists
		}
		return err
	}
	return nil
}

func (s *MongoStore) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	var doc tenantDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return doc.toTenant()
}

func (s *MongoStore) UpdateSubscription(ctx context.Context, id uuid.UUID, sub subscription.Subscription) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"subscription": sub, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (s *MongoStore) UpdateSettings(ctx context.Context, id uuid.UUID, set Settings) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{
			"name":        set.Name,
			"description": set.Description,
			"country":     set.Country,
			"region":      set.Region,
			"city":        set.City,
			"currency":    set.Currency,
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTenantNotFound
	}
	return nil
}

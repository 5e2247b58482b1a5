package promo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	codesCollection = "promo_codes"
	usageCollection = "promo_code_usages"
)

// codeDoc is the persistence shape of a Code. The normalized code
// string is the document ID so duplicates fail on insert.
type codeDoc struct {
	ID           string     `bson:"_id"`
	CodeID       string     `bson:"code_id"`
	DiscountType string     `bson:"discount_type"`
	Amount       int64      `bson:"amount"`
	UsageLimit   int        `bson:"usage_limit"`
	TimesUsed    int        `bson:"times_used"`
	ExpiresAt    *time.Time `bson:"expires_at,omitempty"`
	Active       bool       `bson:"active"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

// usageDoc keys one redemption by code and payment reference.
type usageDoc struct {
	ID         string    `bson:"_id"`
	CodeID     string    `bson:"code_id"`
	PaymentRef string    `bson:"payment_ref"`
	AppliedAt  time.Time `bson:"applied_at"`
}

func usageID(codeID uuid.UUID, paymentRef string) string {
	return codeID.String() + ":" + paymentRef
}

// MongoStore is the document-store backed promo store.
type MongoStore struct {
	codes *mongo.Collection
	usage *mongo.Collection
}

// NewMongoStore creates a promo store on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		codes: db.Collection(codesCollection),
		usage: db.Collection(usageCollection),
	}
}

func (s *MongoStore) Create(ctx context.Context, c *Code) error {
	doc := &codeDoc{
		ID:           Normalize(c.Code),
		CodeID:       c.ID.String(),
		DiscountType: string(c.DiscountType),
		Amount:       c.Amount,
		UsageLimit:   c.UsageLimit,
		TimesUsed:    c.TimesUsed,
		ExpiresAt:    c.ExpiresAt,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if _, err := s.codes.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCodeAlreadyExists
		}
		return err
	}
	return nil
}

func (s *MongoStore) GetByCode(ctx context.Context, code string) (*Code, error) {
	var doc codeDoc
	if err := s.codes.FindOne(ctx, bson.M{"_id": Normalize(code)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	id, err := uuid.Parse(doc.CodeID)
	if err != nil {
		return nil, err
	}
	return &Code{
		ID:           id,
		Code:         doc.ID,
		DiscountType: DiscountType(doc.DiscountType),
		Amount:       doc.Amount,
		UsageLimit:   doc.UsageLimit,
		TimesUsed:    doc.TimesUsed,
		ExpiresAt:    doc.ExpiresAt,
		Active:       doc.Active,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func (s *MongoStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := s.codes.UpdateOne(ctx,
		bson.M{"code_id": id.String()},
		bson.M{"$set": bson.M{"active": active, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCodeNotFound
	}
	return nil
}

func (s *MongoStore) HasUsage(ctx context.Context, codeID uuid.UUID, paymentRef string) (bool, error) {
	err := s.usage.FindOne(ctx, bson.M{"_id": usageID(codeID, paymentRef)}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoStore) RecordUsage(ctx context.Context, codeID uuid.UUID, paymentRef string) error {
	now := time.Now().UTC()
	_, err := s.usage.InsertOne(ctx, &usageDoc{
		ID:         usageID(codeID, paymentRef),
		CodeID:     codeID.String(),
		PaymentRef: paymentRef,
		AppliedAt:  now,
	})
	if err != nil {
		return err
	}
	res, err := s.codes.UpdateOne(ctx,
		bson.M{"code_id": codeID.String()},
		bson.M{"$inc": bson.M{"times_used": 1}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCodeNotFound
	}
	return nil
}

package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// profilesCollection is the document collection holding user profiles.
const profilesCollection = "user_profiles"

// profileDoc is the persistence shape of a Profile. IDs are stored as
// canonical UUID strings to keep documents readable in the console.
type profileDoc struct {
	ID               string                     `bson:"_id"`
	FullName         string                     `bson:"full_name"`
	Email            string                     `bson:"email"`
	Roles            []string                   `bson:"roles"`
	Status           string                     `bson:"status"`
	TenantID         *string                    `bson:"tenant_id,omitempty"`
	InvitationToken  *string                    `bson:"invitation_token,omitempty"`
	InvitationSentAt *time.Time                 `bson:"invitation_sent_at,omitempty"`
	RegistrationDate *time.Time                 `bson:"registration_date,omitempty"`
	Subscription     *subscription.Subscription `bson:"subscription,omitempty"`
	ManagedFarmerIDs []string                   `bson:"managed_farmer_ids,omitempty"`
	CreatedAt        time.Time                  `bson:"created_at"`
	UpdatedAt        time.Time                  `bson:"updated_at"`
}

func toProfileDoc(p *Profile) *profileDoc {
	doc := &profileDoc{
		ID:               p.ID.String(),
		FullName:         p.FullName,
		Email:            p.Email,
		Status:           string(p.Status),
		InvitationToken:  p.InvitationToken,
		InvitationSentAt: p.InvitationSentAt,
		RegistrationDate: p.RegistrationDate,
		Subscription:     p.Subscription,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	for _, r := range p.Roles {
		doc.Roles = append(doc.Roles, string(r))
	}
	if p.TenantID != nil {
		s := p.TenantID.String()
		doc.TenantID = &s
	}
	for _, id := range p.ManagedFarmerIDs {
		doc.ManagedFarmerIDs = append(doc.ManagedFarmerIDs, id.String())
	}
	return doc
}

func (d *profileDoc) toProfile() (*Profile, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	p := &Profile{
		ID:               id,
		FullName:         d.FullName,
		Email:            d.Email,
		Status:           AccountStatus(d.Status),
		InvitationToken:  d.InvitationToken,
		InvitationSentAt: d.InvitationSentAt,
		RegistrationDate: d.RegistrationDate,
		Subscription:     d.Subscription,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	for _, r := range d.Roles {
		p.Roles = append(p.Roles, Role(r))
	}
	if d.TenantID != nil {
		tid, err := uuid.Parse(*d.TenantID)
		if err != nil {
			return nil, err
		}
		p.TenantID = &tid
	}
	for _, s := range d.ManagedFarmerIDs {
		fid, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		p.ManagedFarmerIDs = append(p.ManagedFarmerIDs, fid)
	}
	return p, nil
}

// MongoStore is the document-store backed profile store.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a profile store on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(profilesCollection)}
}

func (s *MongoStore) Create(ctx context.Context, profile *Profile) error {
	if _, err := s.coll.InsertOne(ctx, toProfileDoc(profile)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (s *MongoStore) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoStore) FindActiveByEmail(ctx context.Context, email string) (*Profile, error) {
	return s.findOne(ctx, bson.M{"email": email, "status": string(StatusActive)})
}

func (s *MongoStore) FindInvitedByToken(ctx context.Context, tok string) (*Profile, error) {
	return s.findOne(ctx, bson.M{"invitation_token": tok, "status": string(StatusInvited)})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Profile, error) {
	var doc profileDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return doc.toProfile()
}

func (s *MongoStore) CompleteInvitation(ctx context.Context, id uuid.UUID, fullName string, registeredAt time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{
			"$set": bson.M{
				"full_name":         fullName,
				"status":            string(StatusActive),
				"registration_date": registeredAt,
				"updated_at":        registeredAt,
			},
			"$unset": bson.M{"invitation_token": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *MongoStore) SetSubscription(ctx context.Context, id uuid.UUID, sub subscription.Subscription) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"subscription": sub, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *MongoStore) ListWithoutSubscription(ctx context.Context) ([]uuid.UUID, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"subscription": bson.M{"$exists": false}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []uuid.UUID
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, cursor.Err()
}

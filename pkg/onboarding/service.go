package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/email"
	"github.com/agrikit/agrikit/pkg/identity"
	"github.com/agrikit/agrikit/pkg/logger"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/tenant"
	"github.com/agrikit/agrikit/pkg/token"
	"github.com/agrikit/agrikit/pkg/user"
)

// InvitationTTL is how long an invitation link stays valid after it is
// sent.
const InvitationTTL = 48 * time.Hour

// Config holds onboarding settings loaded from the environment.
type Config struct {
	TokenSecret string `env:"INVITATION_TOKEN_SECRET,required"`
	AppBaseURL  string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
}

// Transactor runs a callback inside one atomic commit.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// invitationClaims is the signed payload embedded in invitation links.
// The store lookup is authoritative; the signature only keeps the
// token opaque and non-guessable.
type invitationClaims struct {
	UserID   uuid.UUID `json:"uid"`
	IssuedAt time.Time `json:"iat"`
}

// Service implements the onboarding workflows.
type Service struct {
	config   Config
	tenants  tenant.Store
	profiles user.Store
	ids      identity.Provider
	mailer   email.Sender
	tx       Transactor
	log      *slog.Logger
	now      func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithClock overrides the service clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the onboarding service.
func NewService(
	config Config,
	tenants tenant.Store,
	profiles user.Store,
	ids identity.Provider,
	mailer email.Sender,
	tx Transactor,
	log *slog.Logger,
	opts ...Option,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		config:   config,
		tenants:  tenants,
		profiles: profiles,
		ids:      ids,
		mailer:   mailer,
		tx:       tx,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTenantInput carries everything needed to open a workspace and
// invite its owner.
type CreateTenantInput struct {
	Name        string
	Description string
	Country     string
	Region      string
	City        string
	Currency    string

	OwnerEmail    string
	OwnerFullName string
}

func (in *CreateTenantInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: tenant name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.OwnerEmail) == "" {
		return fmt.Errorf("%w: owner email is required", ErrInvalidInput)
	}
	return nil
}

// CreateTenant opens a workspace on a fresh trial and invites its
// owner. The tenant and the invited owner profile commit atomically;
// the invitation email is best effort and never rolls the commit back.
// An active profile already holding the owner email fails the whole
// operation with ErrDuplicateActiveUser.
func (s *Service) CreateTenant(ctx context.Context, in CreateTenantInput) (uuid.UUID, error) {
	if err := in.validate(); err != nil {
		return uuid.Nil, err
	}
	ownerEmail := strings.ToLower(strings.TrimSpace(in.OwnerEmail))

	_, err := s.profiles.FindActiveByEmail(ctx, ownerEmail)
	if err == nil {
		return uuid.Nil, ErrDuplicateActiveUser
	}
	if !errors.Is(err, user.ErrProfileNotFound) {
		return uuid.Nil, fmt.Errorf("check owner email: %w", err)
	}

	now := s.now()
	tenantID := uuid.New()
	ownerID := uuid.New()

	tok, err := token.Generate(invitationClaims{UserID: ownerID, IssuedAt: now}, s.config.TokenSecret)
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate invitation token: %w", err)
	}

	trial := subscription.StartTrial(now)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tenants.Create(ctx, &tenant.Tenant{
			ID:           tenantID,
			Name:         in.Name,
			Description:  in.Description,
			Country:      in.Country,
			Region:       in.Region,
			City:         in.City,
			Currency:     in.Currency,
			OwnerUserID:  ownerID,
			Subscription: &trial,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}

		sentAt := now
		if err := s.profiles.Create(ctx, &user.Profile{
			ID:               ownerID,
			FullName:         in.OwnerFullName,
			Email:            ownerEmail,
			Roles:            user.RoleSet{user.RoleAdmin},
			Status:           user.StatusInvited,
			TenantID:         &tenantID,
			InvitationToken:  &tok,
			InvitationSentAt: &sentAt,
			Subscription:     &trial,
			CreatedAt:        now,
			UpdatedAt:        now,
		}); err != nil {
			return fmt.Errorf("create owner profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.sendInvitation(ctx, ownerEmail, in.OwnerFullName, in.Name, tok, tenantID)
	return tenantID, nil
}

// sendInvitation delivers the invitation email. Failures are logged
// and swallowed; the tenant is already committed and the invitation
// can be re-sent.
func (s *Service) sendInvitation(ctx context.Context, to, fullName, tenantName, tok string, tenantID uuid.UUID) {
	body, err := renderInvitationEmail(s.config.AppBaseURL, tok, fullName, tenantName)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to render invitation email",
			logger.TenantID(tenantID), logger.Error(err))
		return
	}
	err = s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  fmt.Sprintf("You have been invited to %s", tenantName),
		BodyHTML: body,
		Tag:      "tenant-invitation",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to send invitation email",
			logger.TenantID(tenantID), logger.Error(err))
	}
}

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/logger"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/user"
)

// Invitation is the safe-to-expose view of a pending invitation,
// returned to the registration page before any credentials exist.
type Invitation struct {
	UserID   uuid.UUID  `json:"user_id"`
	Email    string     `json:"email"`
	FullName string     `json:"full_name"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
}

// ValidateInvitationToken resolves an invitation link to its pending
// profile. It does not consume the token; the registration page may
// call it any number of times. Expiry is measured from the moment the
// invitation was sent, not from first validation.
func (s *Service) ValidateInvitationToken(ctx context.Context, tok string) (*Invitation, error) {
	if strings.TrimSpace(tok) == "" {
		return nil, ErrInvitationInvalid
	}

	p, err := s.profiles.FindInvitedByToken(ctx, tok)
	if errors.Is(err, user.ErrProfileNotFound) {
		return nil, ErrInvitationInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("look up invitation: %w", err)
	}

	if p.InvitationSentAt == nil || s.now().Sub(*p.InvitationSentAt) > InvitationTTL {
		return nil, ErrInvitationExpired
	}
	if p.Email == "" {
		return nil, ErrInvitationIncomplete
	}

	return &Invitation{
		UserID:   p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		TenantID: p.TenantID,
	}, nil
}

// CompleteRegistration turns a pending invitation into an active
// account. The identity is created at the auth provider first, then
// the profile flips to active. The two writes span different systems
// and cannot share a transaction; if the profile write fails the
// freshly created identity is deleted as compensation, and a failed
// compensation is logged at error level for manual reconciliation.
func (s *Service) CompleteRegistration(ctx context.Context, tok, password, fullName string) (uuid.UUID, error) {
	inv, err := s.ValidateInvitationToken(ctx, tok)
	if err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(fullName) == "" {
		fullName = inv.FullName
	}

	identityID, err := s.ids.CreateIdentity(ctx, inv.Email, password)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.profiles.CompleteInvitation(ctx, inv.UserID, fullName, s.now()); err != nil {
		if delErr := s.ids.DeleteIdentity(ctx, identityID); delErr != nil {
			s.log.ErrorContext(ctx, "orphaned identity after failed registration",
				logger.UserID(inv.UserID),
				logger.Error(errors.Join(err, delErr)))
		}
		return uuid.Nil, fmt.Errorf("complete invitation: %w", err)
	}

	s.log.InfoContext(ctx, "invitation registration completed",
		logger.UserID(inv.UserID), logger.TenantID(inv.TenantID))
	return inv.UserID, nil
}

// RegisterSelfServe signs up a user with no pre-existing invitation.
// The profile starts active but tenantless, carrying its own trial
// subscription and no roles; roles are granted when the user opens a
// workspace of their own.
func (s *Service) RegisterSelfServe(ctx context.Context, fullName, emailAddr, password string) (uuid.UUID, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" {
		return uuid.Nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	_, err := s.profiles.FindActiveByEmail(ctx, emailAddr)
	if err == nil {
		return uuid.Nil, ErrDuplicateActiveUser
	}
	if !errors.Is(err, user.ErrProfileNotFound) {
		return uuid.Nil, fmt.Errorf("check email: %w", err)
	}

	identityID, err := s.ids.CreateIdentity(ctx, emailAddr, password)
	if err != nil {
		return uuid.Nil, err
	}

	now := s.now()
	trial := subscription.StartTrial(now)
	reg := now
	err = s.profiles.Create(ctx, &user.Profile{
		ID:               identityID,
		FullName:         fullName,
		Email:            emailAddr,
		Status:           user.StatusActive,
		RegistrationDate: &reg,
		Subscription:     &trial,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		if delErr := s.ids.DeleteIdentity(ctx, identityID); delErr != nil {
			s.log.ErrorContext(ctx, "orphaned identity after failed signup",
				logger.UserID(identityID),
				logger.Error(errors.Join(err, delErr)))
		}
		return uuid.Nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.InfoContext(ctx, "self-serve registration completed", logger.UserID(identityID))
	return identityID, nil
}

// RepairProfile recreates the profile document for an authenticated
// identity that lost it. Check-then-create runs inside a transaction
// and treats a concurrent create as success, so concurrent session
// starts cannot produce duplicates.
func (s *Service) RepairProfile(ctx context.Context, userID uuid.UUID, emailAddr, fullName string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.profiles.GetByID(ctx, userID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, user.ErrProfileNotFound) {
			return fmt.Errorf("check profile: %w", err)
		}

		now := s.now()
		starter := subscription.Starter()
		createErr := s.profiles.Create(ctx, &user.Profile{
			ID:           userID,
			FullName:     fullName,
			Email:        emailAddr,
			Roles:        user.RoleSet{user.RoleFarmer},
			Status:       user.StatusActive,
			Subscription: &starter,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(createErr, user.ErrProfileAlreadyExists) {
			return nil
		}
		if createErr != nil {
			return fmt.Errorf("repair profile: %w", createErr)
		}

		s.log.WarnContext(ctx, "recreated missing profile document", logger.UserID(userID))
		return nil
	})
}

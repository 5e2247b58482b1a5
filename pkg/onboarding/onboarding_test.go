package onboarding_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrikit/agrikit/pkg/email"
	"github.com/agrikit/agrikit/pkg/identity"
	"github.com/agrikit/agrikit/pkg/onboarding"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/tenant"
	"github.com/agrikit/agrikit/pkg/user"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type memTransactor struct {
	mu sync.Mutex
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	fail bool
}

func (m *fakeMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, params)
	return nil
}

type fixture struct {
	tenants  *tenant.MemoryStore
	profiles *user.MemoryStore
	ids      *identity.LocalProvider
	mailer   *fakeMailer
	svc      *onboarding.Service
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := testNow
	f := &fixture{
		tenants:  tenant.NewMemoryStore(),
		profiles: user.NewMemoryStore(),
		ids:      identity.NewLocalProvider(),
		mailer:   &fakeMailer{},
		clock:    &clock,
	}
	f.svc = onboarding.NewService(
		onboarding.Config{TokenSecret: "test-secret", AppBaseURL: "https://app.example.com"},
		f.tenants,
		f.profiles,
		f.ids,
		f.mailer,
		&memTransactor{},
		nil,
		onboarding.WithClock(func() time.Time { return *f.clock }),
	)
	return f
}

func (f *fixture) createTenant(t *testing.T) (uuid.UUID, *user.Profile) {
	t.Helper()
	ctx := context.Background()
	tenantID, err := f.svc.CreateTenant(ctx, onboarding.CreateTenantInput{
		Name:          "Green Acres",
		Country:       "Nigeria",
		Currency:      "NGN",
		OwnerEmail:    "owner@example.com",
		OwnerFullName: "Ade Balogun",
	})
	require.NoError(t, err)

	tn, err := f.tenants.GetByID(ctx, tenantID)
	require.NoError(t, err)
	owner, err := f.profiles.GetByID(ctx, tn.OwnerUserID)
	require.NoError(t, err)
	return tenantID, owner
}

func TestCreateTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates workspace with trial and invited owner", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		tenantID, owner := f.createTenant(t)

		tn, err := f.tenants.GetByID(ctx, tenantID)
		require.NoError(t, err)
		require.NotNil(t, tn.Subscription)
		assert.Equal(t, subscription.PlanBusiness, tn.Subscription.PlanID)
		assert.Equal(t, subscription.StatusTrialing, tn.Subscription.Status)
		require.NotNil(t, tn.Subscription.TrialEndsAt)
		assert.Equal(t, testNow.AddDate(0, 0, subscription.TrialDays), *tn.Subscription.TrialEndsAt)

		assert.Equal(t, user.StatusInvited, owner.Status)
		assert.True(t, owner.IsInvited())
		require.NotNil(t, owner.TenantID)
		assert.Equal(t, tenantID, *owner.TenantID)
		assert.True(t, owner.Roles.Has(user.RoleAdmin))

		require.Len(t, f.mailer.sent, 1)
		assert.Equal(t, "owner@example.com", f.mailer.sent[0].SendTo)
		assert.Contains(t, f.mailer.sent[0].BodyHTML, "Green Acres")
	})

	t.Run("duplicate active email rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.NoError(t, f.profiles.Create(ctx, &user.Profile{
			ID:     uuid.New(),
			Email:  "owner@example.com",
			Status: user.StatusActive,
		}))

		_, err := f.svc.CreateTenant(ctx, onboarding.CreateTenantInput{
			Name:       "Green Acres",
			OwnerEmail: "owner@example.com",
		})
		assert.ErrorIs(t, err, onboarding.ErrDuplicateActiveUser)
	})

	t.Run("mail failure does not roll back", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.mailer.fail = true

		tenantID, err := f.svc.CreateTenant(ctx, onboarding.CreateTenantInput{
			Name:       "Green Acres",
			OwnerEmail: "owner@example.com",
		})
		require.NoError(t, err)

		_, err = f.tenants.GetByID(ctx, tenantID)
		assert.NoError(t, err)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.CreateTenant(ctx, onboarding.CreateTenantInput{OwnerEmail: "owner@example.com"})
		assert.ErrorIs(t, err, onboarding.ErrInvalidInput)
	})
}

func TestValidateInvitationToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid token is re-entrant", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		for range 2 {
			inv, err := f.svc.ValidateInvitationToken(ctx, *owner.InvitationToken)
			require.NoError(t, err)
			assert.Equal(t, owner.ID, inv.UserID)
			assert.Equal(t, "owner@example.com", inv.Email)
		}
	})

	t.Run("valid just inside the window", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		*f.clock = testNow.Add(48*time.Hour - time.Minute)
		_, err := f.svc.ValidateInvitationToken(ctx, *owner.InvitationToken)
		assert.NoError(t, err)
	})

	t.Run("valid at exactly the window edge", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		*f.clock = testNow.Add(onboarding.InvitationTTL)
		_, err := f.svc.ValidateInvitationToken(ctx, *owner.InvitationToken)
		assert.NoError(t, err)
	})

	t.Run("expired just outside the window", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		*f.clock = testNow.Add(48*time.Hour + time.Minute)
		_, err := f.svc.ValidateInvitationToken(ctx, *owner.InvitationToken)
		assert.ErrorIs(t, err, onboarding.ErrInvitationExpired)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.ValidateInvitationToken(ctx, "bogus")
		assert.ErrorIs(t, err, onboarding.ErrInvitationInvalid)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.ValidateInvitationToken(ctx, "  ")
		assert.ErrorIs(t, err, onboarding.ErrInvitationInvalid)
	})
}

// failingProfiles wraps the memory store to fail invitation
// completion, exercising the compensation path.
type failingProfiles struct {
	*user.MemoryStore
}

func (s *failingProfiles) CompleteInvitation(ctx context.Context, id uuid.UUID, fullName string, registeredAt time.Time) error {
	return errors.New("write unavailable")
}

func TestCompleteRegistration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("activates the profile and credentials", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		userID, err := f.svc.CompleteRegistration(ctx, *owner.InvitationToken, "s3cret-pass", "Ade B.")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, userID)

		got, err := f.profiles.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, user.StatusActive, got.Status)
		assert.Nil(t, got.InvitationToken)
		assert.Equal(t, "Ade B.", got.FullName)
		require.NotNil(t, got.RegistrationDate)

		_, err = f.ids.SignIn(ctx, "owner@example.com", "s3cret-pass")
		assert.NoError(t, err)
	})

	t.Run("expired token cannot be completed", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		*f.clock = testNow.Add(onboarding.InvitationTTL + time.Hour)
		_, err := f.svc.CompleteRegistration(ctx, *owner.InvitationToken, "s3cret-pass", "")
		assert.ErrorIs(t, err, onboarding.ErrInvitationExpired)
	})

	t.Run("identity conflict passes through", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		_, err := f.ids.CreateIdentity(ctx, "owner@example.com", "elsewhere1")
		require.NoError(t, err)

		_, err = f.svc.CompleteRegistration(ctx, *owner.InvitationToken, "s3cret-pass", "")
		assert.ErrorIs(t, err, identity.ErrEmailAlreadyInUse)
	})

	t.Run("profile failure compensates the identity", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, owner := f.createTenant(t)

		broken := onboarding.NewService(
			onboarding.Config{TokenSecret: "test-secret", AppBaseURL: "https://app.example.com"},
			f.tenants,
			&failingProfiles{f.profiles},
			f.ids,
			f.mailer,
			&memTransactor{},
			nil,
			onboarding.WithClock(func() time.Time { return *f.clock }),
		)

		_, err := broken.CompleteRegistration(ctx, *owner.InvitationToken, "s3cret-pass", "")
		require.Error(t, err)

		// Compensation removed the identity, so the email is free
		// for a retry.
		_, err = f.ids.CreateIdentity(ctx, "owner@example.com", "retry-pass")
		assert.NoError(t, err)
	})
}

func TestRegisterSelfServe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates an active tenantless profile on trial", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		userID, err := f.svc.RegisterSelfServe(ctx, "Chidi Okeke", "chidi@example.com", "s3cret-pass")
		require.NoError(t, err)

		got, err := f.profiles.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, user.StatusActive, got.Status)
		assert.Nil(t, got.TenantID)
		// Roles are only granted when the user opens a workspace.
		assert.Empty(t, got.Roles)
		require.NotNil(t, got.Subscription)
		assert.Equal(t, subscription.StatusTrialing, got.Subscription.Status)

		signedIn, err := f.ids.SignIn(ctx, "chidi@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, userID, signedIn)
	})

	t.Run("duplicate active email rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.RegisterSelfServe(ctx, "A", "chidi@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = f.svc.RegisterSelfServe(ctx, "B", "chidi@example.com", "other-pass1")
		assert.ErrorIs(t, err, onboarding.ErrDuplicateActiveUser)
	})
}

func TestRepairProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("recreates a missing profile once", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		userID := uuid.New()

		require.NoError(t, f.svc.RepairProfile(ctx, userID, "lost@example.com", "Lost User"))

		got, err := f.profiles.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, user.StatusActive, got.Status)
		require.NotNil(t, got.Subscription)
		assert.Equal(t, subscription.PlanStarter, got.Subscription.PlanID)

		// Second repair is a no-op.
		require.NoError(t, f.svc.RepairProfile(ctx, userID, "lost@example.com", "Lost User"))
		again, err := f.profiles.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, got.CreatedAt, again.CreatedAt)
	})

	t.Run("existing profile untouched", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		userID := uuid.New()
		require.NoError(t, f.profiles.Create(ctx, &user.Profile{
			ID:       userID,
			FullName: "Original",
			Status:   user.StatusActive,
		}))

		require.NoError(t, f.svc.RepairProfile(ctx, userID, "x@example.com", "Replacement"))
		got, err := f.profiles.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Original", got.FullName)
	})
}

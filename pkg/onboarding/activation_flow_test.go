package onboarding_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrikit/agrikit/pkg/billing"
	"github.com/agrikit/agrikit/pkg/entitlement"
	"github.com/agrikit/agrikit/pkg/paystack"
	"github.com/agrikit/agrikit/pkg/promo"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/user"
)

// The full happy path: an admin opens a workspace, the owner registers
// through the invitation, and a verified payment upgrades the trial to
// a paid plan that unlocks the paid application areas.
func TestTenantActivationFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const secret = "whsec_flow"
	f := newFixture(t)
	reconciler := billing.NewReconciler(
		secret,
		f.tenants,
		f.profiles,
		promo.NewLedger(promo.NewMemoryStore(), nil),
		&memTransactor{},
		nil,
		billing.WithClock(func() time.Time { return *f.clock }),
	)

	tenantID, owner := f.createTenant(t)

	_, err := f.svc.CompleteRegistration(ctx, *owner.InvitationToken, "s3cret-pass", "")
	require.NoError(t, err)

	// Trial gives full business access before any payment.
	tn, err := f.tenants.GetByID(ctx, tenantID)
	require.NoError(t, err)
	access := entitlement.Evaluate(tn.Subscription, user.RoleSet{user.RoleAdmin}, *f.clock)
	assert.True(t, access.CanAccessOfficeOps)

	payload := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "ref_flow_001",
			"amount": 1200000,
			"currency": "NGN",
			"metadata": {
				"tenant_id": "` + tenantID.String() + `",
				"plan_id": "grower",
				"billing_cycle": "monthly"
			}
		}
	}`)

	outcome, err := reconciler.HandleWebhook(ctx, payload, paystack.Sign(secret, payload))
	require.NoError(t, err)
	assert.True(t, outcome.Applied)

	tn, err = f.tenants.GetByID(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, subscription.PlanGrower, tn.Subscription.PlanID)
	assert.Equal(t, subscription.StatusActive, tn.Subscription.Status)
	require.NotNil(t, tn.Subscription.NextBillingDate)
	assert.Equal(t, f.clock.AddDate(0, 1, 0), *tn.Subscription.NextBillingDate)

	// Well past the old trial window the paid plan still grants its
	// tier, and only its tier.
	later := f.clock.AddDate(0, 0, subscription.TrialDays+10)
	access = entitlement.Evaluate(tn.Subscription, user.RoleSet{user.RoleAdmin}, later)
	assert.True(t, access.CanAccessFarmOps)
	assert.True(t, access.CanAccessAnimalOps)
	assert.False(t, access.CanAccessOfficeOps)
	assert.False(t, access.CanAccessHROps)

	// The owner profile mirror was updated too.
	got, err := f.profiles.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Subscription)
	assert.Equal(t, subscription.PlanGrower, got.Subscription.PlanID)
}

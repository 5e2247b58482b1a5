package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrikit/agrikit/pkg/billing"
	"github.com/agrikit/agrikit/pkg/paystack"
	"github.com/agrikit/agrikit/pkg/promo"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/tenant"
	"github.com/agrikit/agrikit/pkg/user"
)

const webhookSecret = "sk_test_secret"

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// memTransactor serializes callbacks so test assertions see a
// consistent view; memory stores have no real transactions.
type memTransactor struct {
	mu sync.Mutex
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fixture struct {
	tenants    *tenant.MemoryStore
	profiles   *user.MemoryStore
	promos     *promo.MemoryStore
	reconciler *billing.Reconciler

	tenantID uuid.UUID
	ownerID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		tenants:  tenant.NewMemoryStore(),
		profiles: user.NewMemoryStore(),
		promos:   promo.NewMemoryStore(),
		tenantID: uuid.New(),
		ownerID:  uuid.New(),
	}

	trial := subscription.StartTrial(testNow.AddDate(0, 0, -5))
	require.NoError(t, f.tenants.Create(ctx, &tenant.Tenant{
		ID:           f.tenantID,
		Name:         "Green Acres",
		OwnerUserID:  f.ownerID,
		Subscription: &trial,
	}))
	require.NoError(t, f.profiles.Create(ctx, &user.Profile{
		ID:       f.ownerID,
		Email:    "owner@example.com",
		Status:   user.StatusActive,
		TenantID: &f.tenantID,
	}))

	f.reconciler = billing.NewReconciler(
		webhookSecret,
		f.tenants,
		f.profiles,
		promo.NewLedger(f.promos, nil),
		&memTransactor{},
		nil,
		billing.WithClock(func() time.Time { return testNow }),
	)
	return f
}

func (f *fixture) chargePayload(ref, promoCode string) []byte {
	payload := `{
		"event": "charge.success",
		"data": {
			"reference": "` + ref + `",
			"amount": 250000,
			"currency": "NGN",
			"metadata": {
				"tenant_id": "` + f.tenantID.String() + `",
				"plan_id": "business",
				"billing_cycle": "annually"`
	if promoCode != "" {
		payload += `,
				"promo_code": "` + promoCode + `"`
	}
	payload += `
			}
		}
	}`
	return []byte(payload)
}

func (f *fixture) deliver(t *testing.T, payload []byte) (billing.Outcome, error) {
	t.Helper()
	return f.reconciler.HandleWebhook(context.Background(), payload, paystack.Sign(webhookSecret, payload))
}

func TestHandleWebhookActivation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t)
	outcome, err := f.deliver(t, f.chargePayload("ref_001", ""))
	require.NoError(t, err)
	assert.True(t, outcome.Applied)

	got, err := f.tenants.GetByID(ctx, f.tenantID)
	require.NoError(t, err)
	require.NotNil(t, got.Subscription)
	assert.Equal(t, subscription.PlanBusiness, got.Subscription.PlanID)
	assert.Equal(t, subscription.StatusActive, got.Subscription.Status)
	assert.Nil(t, got.Subscription.TrialEndsAt)
	require.NotNil(t, got.Subscription.NextBillingDate)
	assert.Equal(t, testNow.AddDate(1, 0, 0), *got.Subscription.NextBillingDate)

	owner, err := f.profiles.GetByID(ctx, f.ownerID)
	require.NoError(t, err)
	require.NotNil(t, owner.Subscription)
	assert.Equal(t, subscription.StatusActive, owner.Subscription.Status)
}

func TestHandleWebhookMonthlyCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t)
	payload := []byte(`{"event":"charge.success","data":{"reference":"ref_monthly","amount":50000,"currency":"NGN","metadata":{"tenant_id":"` +
		f.tenantID.String() + `","plan_id":"grower","billing_cycle":"monthly"}}}`)
	outcome, err := f.deliver(t, payload)
	require.NoError(t, err)
	assert.True(t, outcome.Applied)

	got, err := f.tenants.GetByID(ctx, f.tenantID)
	require.NoError(t, err)
	assert.Equal(t, subscription.PlanGrower, got.Subscription.PlanID)
	assert.Equal(t, subscription.CycleMonthly, got.Subscription.BillingCycle)
	require.NotNil(t, got.Subscription.NextBillingDate)
	assert.Equal(t, testNow.AddDate(0, 1, 0), *got.Subscription.NextBillingDate)
}

func TestHandleWebhookReplay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t)
	require.NoError(t, f.promos.Create(ctx, &promo.Code{
		ID:           uuid.New(),
		Code:         "HARVEST10",
		DiscountType: promo.DiscountPercentage,
		Amount:       10,
		UsageLimit:   100,
		Active:       true,
	}))

	payload := f.chargePayload("ref_replay", "HARVEST10")
	for range 3 {
		outcome, err := f.deliver(t, payload)
		require.NoError(t, err)
		assert.True(t, outcome.Applied)
	}

	code, err := f.promos.GetByCode(ctx, "HARVEST10")
	require.NoError(t, err)
	assert.Equal(t, 1, code.TimesUsed, "replays must not re-count promo usage")

	got, err := f.tenants.GetByID(ctx, f.tenantID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, got.Subscription.Status)
}

func TestHandleWebhookPromoLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t)
	require.NoError(t, f.promos.Create(ctx, &promo.Code{
		ID:           uuid.New(),
		Code:         "ONEUSE",
		DiscountType: promo.DiscountFixed,
		Amount:       5000,
		UsageLimit:   1,
		TimesUsed:    1,
		Active:       true,
	}))

	// The cap forfeits the discount, not the payment.
	outcome, err := f.deliver(t, f.chargePayload("ref_cap", "ONEUSE"))
	require.NoError(t, err)
	assert.True(t, outcome.Applied)

	code, err := f.promos.GetByCode(ctx, "ONEUSE")
	require.NoError(t, err)
	assert.Equal(t, 1, code.TimesUsed)
}

func TestHandleWebhookUnknownPromo(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	outcome, err := f.deliver(t, f.chargePayload("ref_promo", "GHOST"))
	require.NoError(t, err)
	assert.True(t, outcome.Applied)
}

func TestHandleWebhookRejections(t *testing.T) {
	t.Parallel()

	t.Run("bad signature", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		payload := f.chargePayload("ref_sig", "")
		_, err := f.reconciler.HandleWebhook(context.Background(), payload, "deadbeef")
		assert.ErrorIs(t, err, billing.ErrSignatureMismatch)

		got, err := f.tenants.GetByID(context.Background(), f.tenantID)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusTrialing, got.Subscription.Status)
	})

	t.Run("incomplete metadata", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		payload := []byte(`{"event":"charge.success","data":{"reference":"ref_x","metadata":{}}}`)
		_, err := f.deliver(t, payload)
		assert.ErrorIs(t, err, billing.ErrMissingMetadata)
	})
}

func TestHandleWebhookNoOps(t *testing.T) {
	t.Parallel()

	t.Run("non-charge event acknowledged", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		payload := []byte(`{"event":"transfer.success","data":{}}`)
		outcome, err := f.deliver(t, payload)
		require.NoError(t, err)
		assert.False(t, outcome.Applied)
	})

	t.Run("unknown tenant acknowledged", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		payload := []byte(`{"event":"charge.success","data":{"reference":"ref_gone","metadata":{"tenant_id":"` +
			uuid.NewString() + `","plan_id":"grower","billing_cycle":"monthly"}}}`)
		outcome, err := f.deliver(t, payload)
		require.NoError(t, err)
		assert.False(t, outcome.Applied)
		assert.Equal(t, "tenant not found", outcome.Reason)
	})
}

package billing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrikit/agrikit/pkg/billing"
	"github.com/agrikit/agrikit/pkg/subscription"
)

func TestParseEvent(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	t.Run("complete charge event", func(t *testing.T) {
		t.Parallel()
		payload := `{
			"event": "charge.success",
			"data": {
				"reference": "ref_001",
				"amount": 250000,
				"currency": "NGN",
				"metadata": {
					"tenant_id": "` + tenantID.String() + `",
					"plan_id": "grower",
					"billing_cycle": "monthly",
					"promo_code": "HARVEST10"
				}
			}
		}`

		ev, err := billing.ParseEvent([]byte(payload))
		require.NoError(t, err)
		assert.Equal(t, billing.EventChargeSuccess, ev.Type)
		assert.Equal(t, "ref_001", ev.Reference)
		assert.Equal(t, int64(250000), ev.Amount)
		assert.Equal(t, tenantID, ev.Metadata.TenantID)
		assert.Equal(t, subscription.PlanGrower, ev.Metadata.PlanID)
		assert.Equal(t, subscription.CycleMonthly, ev.Metadata.BillingCycle)
		assert.Equal(t, "HARVEST10", ev.Metadata.PromoCode)
	})

	t.Run("non-charge event skips metadata validation", func(t *testing.T) {
		t.Parallel()
		ev, err := billing.ParseEvent([]byte(`{"event":"transfer.success","data":{}}`))
		require.NoError(t, err)
		assert.Equal(t, "transfer.success", ev.Type)
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()
		_, err := billing.ParseEvent([]byte("not json"))
		assert.ErrorIs(t, err, billing.ErrMalformedPayload)
	})

	t.Run("missing event type", func(t *testing.T) {
		t.Parallel()
		_, err := billing.ParseEvent([]byte(`{"data":{}}`))
		assert.ErrorIs(t, err, billing.ErrMalformedPayload)
	})

	t.Run("missing metadata fields", func(t *testing.T) {
		t.Parallel()
		payload := `{"event":"charge.success","data":{"reference":"ref_001","metadata":{"tenant_id":"` +
			tenantID.String() + `"}}}`
		_, err := billing.ParseEvent([]byte(payload))
		assert.ErrorIs(t, err, billing.ErrMissingMetadata)
	})

	t.Run("missing reference", func(t *testing.T) {
		t.Parallel()
		payload := `{"event":"charge.success","data":{"metadata":{"tenant_id":"` +
			tenantID.String() + `","plan_id":"grower","billing_cycle":"monthly"}}}`
		_, err := billing.ParseEvent([]byte(payload))
		assert.ErrorIs(t, err, billing.ErrMissingMetadata)
	})

	t.Run("unknown plan", func(t *testing.T) {
		t.Parallel()
		payload := `{"event":"charge.success","data":{"reference":"r","metadata":{"tenant_id":"` +
			tenantID.String() + `","plan_id":"platinum","billing_cycle":"monthly"}}}`
		_, err := billing.ParseEvent([]byte(payload))
		assert.ErrorIs(t, err, billing.ErrMissingMetadata)
	})

	t.Run("bad tenant id", func(t *testing.T) {
		t.Parallel()
		payload := `{"event":"charge.success","data":{"reference":"r","metadata":{"tenant_id":"not-a-uuid","plan_id":"grower","billing_cycle":"monthly"}}}`
		_, err := billing.ParseEvent([]byte(payload))
		assert.ErrorIs(t, err, billing.ErrMissingMetadata)
	})
}

package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrikit/agrikit/pkg/subscription"
)

func TestStartTrial(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sub := subscription.StartTrial(now)

	assert.Equal(t, subscription.PlanBusiness, sub.PlanID)
	assert.Equal(t, subscription.StatusTrialing, sub.Status)
	assert.Equal(t, subscription.CycleAnnually, sub.BillingCycle)
	assert.Nil(t, sub.NextBillingDate)
	require.NotNil(t, sub.TrialEndsAt)
	assert.Equal(t, now.AddDate(0, 0, 20), *sub.TrialEndsAt)
}

func TestActivatePaidPlan(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("monthly cycle bills one month out", func(t *testing.T) {
		t.Parallel()
		sub, err := subscription.ActivatePaidPlan(subscription.PlanGrower, subscription.CycleMonthly, now)
		require.NoError(t, err)

		assert.Equal(t, subscription.PlanGrower, sub.PlanID)
		assert.Equal(t, subscription.StatusActive, sub.Status)
		assert.Nil(t, sub.TrialEndsAt)
		require.NotNil(t, sub.NextBillingDate)
		assert.Equal(t, now.AddDate(0, 1, 0), *sub.NextBillingDate)
	})

	t.Run("annual cycle bills one year out", func(t *testing.T) {
		t.Parallel()
		sub, err := subscription.ActivatePaidPlan(subscription.PlanBusiness, subscription.CycleAnnually, now)
		require.NoError(t, err)

		require.NotNil(t, sub.NextBillingDate)
		assert.Equal(t, now.AddDate(1, 0, 0), *sub.NextBillingDate)
	})

	t.Run("unknown plan is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := subscription.ActivatePaidPlan("platinum", subscription.CycleMonthly, now)
		assert.ErrorIs(t, err, subscription.ErrPlanNotFound)
	})

	t.Run("unknown cycle is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := subscription.ActivatePaidPlan(subscription.PlanGrower, "weekly", now)
		assert.ErrorIs(t, err, subscription.ErrInvalidBillingCycle)
	})
}

func TestHasPaidAccessAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active subscription always grants access", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{Status: subscription.StatusActive}
		assert.True(t, sub.HasPaidAccessAt(now))
	})

	t.Run("trial grants access strictly before trial end", func(t *testing.T) {
		t.Parallel()
		ends := now.Add(time.Minute)
		sub := &subscription.Subscription{Status: subscription.StatusTrialing, TrialEndsAt: &ends}

		assert.True(t, sub.HasPaidAccessAt(now))
		assert.False(t, sub.HasPaidAccessAt(ends))
		assert.False(t, sub.HasPaidAccessAt(ends.Add(time.Second)))
	})

	t.Run("trial without end date grants nothing", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{Status: subscription.StatusTrialing}
		assert.False(t, sub.HasPaidAccessAt(now))
	})

	t.Run("canceled and past due grant nothing", func(t *testing.T) {
		t.Parallel()
		for _, status := range []subscription.Status{subscription.StatusCanceled, subscription.StatusPastDue} {
			sub := &subscription.Subscription{Status: status}
			assert.False(t, sub.HasPaidAccessAt(now), "status %s", status)
		}
	})

	t.Run("nil subscription grants nothing", func(t *testing.T) {
		t.Parallel()
		var sub *subscription.Subscription
		assert.False(t, sub.HasPaidAccessAt(now))
	})
}

func TestEffectivePlan(t *testing.T) {
	t.Parallel()

	var nilSub *subscription.Subscription
	assert.Equal(t, subscription.PlanStarter, nilSub.EffectivePlan())

	sub := &subscription.Subscription{}
	assert.Equal(t, subscription.PlanStarter, sub.EffectivePlan())

	sub = &subscription.Subscription{PlanID: subscription.PlanEnterprise}
	assert.Equal(t, subscription.PlanEnterprise, sub.EffectivePlan())
}

func TestTrialDaysRemainingAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("not trialing", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{Status: subscription.StatusActive}
		assert.Equal(t, 0, sub.TrialDaysRemainingAt(now))
	})

	t.Run("rounds partial days up", func(t *testing.T) {
		t.Parallel()
		ends := now.Add(36 * time.Hour)
		sub := &subscription.Subscription{Status: subscription.StatusTrialing, TrialEndsAt: &ends}
		assert.Equal(t, 2, sub.TrialDaysRemainingAt(now))
	})

	t.Run("expired trial", func(t *testing.T) {
		t.Parallel()
		ends := now.Add(-time.Hour)
		sub := &subscription.Subscription{Status: subscription.StatusTrialing, TrialEndsAt: &ends}
		assert.Equal(t, 0, sub.TrialDaysRemainingAt(now))
	})
}

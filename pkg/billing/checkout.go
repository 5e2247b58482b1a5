package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrikit/agrikit/pkg/paypal"
	"github.com/agrikit/agrikit/pkg/promo"
	"github.com/agrikit/agrikit/pkg/subscription"
)

// OrderProvider creates and captures payment-provider orders.
// *paypal.Client satisfies it.
type OrderProvider interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.Order, error)
}

// CheckoutOrder is an order opened with the payment provider, priced
// from the plan catalog with any promo discount already applied.
type CheckoutOrder struct {
	OrderID      string
	ApproveURL   string
	Amount       int64
	Currency     string
	PlanID       subscription.PlanID
	BillingCycle subscription.BillingCycle
	PromoApplied bool
}

// Checkout prices a plan purchase and opens the provider order the
// buyer approves. Promo codes are validated here against activity and
// expiry; the usage cap is enforced later by the ledger when the
// payment settles.
type Checkout struct {
	plans  subscription.PlansListSource
	promos promo.Store
	orders OrderProvider
	log    *slog.Logger
	now    func() time.Time
}

// CheckoutOption configures optional Checkout behavior.
type CheckoutOption func(*Checkout)

// WithCheckoutClock overrides the clock used for promo expiry checks.
func WithCheckoutClock(now func() time.Time) CheckoutOption {
	return func(c *Checkout) {
		c.now = now
	}
}

// NewCheckout creates the checkout service.
func NewCheckout(plans subscription.PlansListSource, promos promo.Store, orders OrderProvider, log *slog.Logger, opts ...CheckoutOption) *Checkout {
	if log == nil {
		log = slog.Default()
	}
	c := &Checkout{
		plans:  plans,
		promos: promos,
		orders: orders,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartOrder prices the plan for the billing cycle, applies the promo
// code when one is given, and opens a provider order. Free plans are
// not purchasable.
func (c *Checkout) StartOrder(ctx context.Context, planID subscription.PlanID, cycle subscription.BillingCycle, promoCode string) (*CheckoutOrder, error) {
	if !cycle.Valid() {
		return nil, subscription.ErrInvalidBillingCycle
	}

	plans, err := c.plans.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plan catalog: %w", err)
	}
	plan, ok := plans[planID]
	if !ok {
		return nil, subscription.ErrPlanNotFound
	}

	price := plan.MonthlyPrice
	if cycle == subscription.CycleAnnually {
		price = plan.AnnualPrice
	}
	if price.Amount <= 0 {
		return nil, ErrPlanNotPurchasable
	}

	amount := price.Amount
	promoApplied := false
	if promoCode != "" {
		code, err := c.promos.GetByCode(ctx, promo.Normalize(promoCode))
		if err != nil {
			if promo.IsNotFound(err) {
				return nil, ErrPromoNotUsable
			}
			return nil, fmt.Errorf("look up promo code: %w", err)
		}
		if !code.Usable(c.now()) {
			return nil, ErrPromoNotUsable
		}
		amount = code.Discount(amount)
		promoApplied = true
	}

	order, err := c.orders.CreateOrder(ctx, amount, price.Currency)
	if err != nil {
		return nil, fmt.Errorf("create provider order: %w", err)
	}

	c.log.InfoContext(ctx, "checkout order opened",
		slog.String("order_id", order.ID),
		slog.String("plan_id", string(planID)),
		slog.Int64("amount", amount))

	return &CheckoutOrder{
		OrderID:      order.ID,
		ApproveURL:   order.ApproveURL,
		Amount:       amount,
		Currency:     price.Currency,
		PlanID:       planID,
		BillingCycle: cycle,
		PromoApplied: promoApplied,
	}, nil
}

// CaptureOrder captures an approved provider order.
func (c *Checkout) CaptureOrder(ctx context.Context, orderID string) (*paypal.Order, error) {
	order, err := c.orders.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	c.log.InfoContext(ctx, "checkout order captured", slog.String("order_id", order.ID))
	return order, nil
}

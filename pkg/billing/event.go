package billing

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/subscription"
)

// EventChargeSuccess is the only event type that mutates state; all
// others are acknowledged and ignored.
const EventChargeSuccess = "charge.success"

// Metadata is the checkout context echoed back by the provider. It is
// attached when the checkout session is created and carries everything
// the reconciler needs to apply the payment.
type Metadata struct {
	TenantID     uuid.UUID
	PlanID       subscription.PlanID
	BillingCycle subscription.BillingCycle

	// PromoCode is optional; empty means no discount was claimed.
	PromoCode string
}

// Event is a parsed provider webhook event.
type Event struct {
	Type      string
	Reference string
	Amount    int64
	Currency  string
	Metadata  Metadata
}

// rawEvent mirrors the Paystack webhook envelope.
type rawEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Metadata  struct {
			TenantID     string `json:"tenant_id"`
			PlanID       string `json:"plan_id"`
			BillingCycle string `json:"billing_cycle"`
			PromoCode    string `json:"promo_code"`
		} `json:"metadata"`
	} `json:"data"`
}

// ParseEvent decodes a webhook payload. Returns ErrMalformedPayload on
// undecodable JSON. Metadata is validated only for charge.success
// events since other event types are ignored anyway; incomplete or
// invalid metadata returns ErrMissingMetadata.
func ParseEvent(payload []byte) (*Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if raw.Event == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrMalformedPayload)
	}

	ev := &Event{
		Type:      raw.Event,
		Reference: raw.Data.Reference,
		Amount:    raw.Data.Amount,
		Currency:  raw.Data.Currency,
	}
	if ev.Type != EventChargeSuccess {
		return ev, nil
	}

	if ev.Reference == "" {
		return nil, fmt.Errorf("%w: missing payment reference", ErrMissingMetadata)
	}

	m := raw.Data.Metadata
	if m.TenantID == "" || m.PlanID == "" || m.BillingCycle == "" {
		return nil, fmt.Errorf("%w: tenant_id, plan_id, and billing_cycle are required", ErrMissingMetadata)
	}
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad tenant_id: %v", ErrMissingMetadata, err)
	}
	planID := subscription.PlanID(m.PlanID)
	if !planID.Valid() {
		return nil, fmt.Errorf("%w: unknown plan_id %q", ErrMissingMetadata, m.PlanID)
	}
	cycle := subscription.BillingCycle(m.BillingCycle)
	if !cycle.Valid() {
		return nil, fmt.Errorf("%w: unknown billing_cycle %q", ErrMissingMetadata, m.BillingCycle)
	}

	ev.Metadata = Metadata{
		TenantID:     tenantID,
		PlanID:       planID,
		BillingCycle: cycle,
		PromoCode:    m.PromoCode,
	}
	return ev, nil
}

package billing

import "errors"

var (
	ErrSignatureMismatch  = errors.New("webhook signature mismatch")
	ErrMalformedPayload   = errors.New("malformed webhook payload")
	ErrMissingMetadata    = errors.New("webhook metadata incomplete")
	ErrPlanNotPurchasable = errors.New("plan cannot be purchased")
	ErrPromoNotUsable     = errors.New("promo code not usable")
)

package promo

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiscountType says how the promo amount is interpreted.
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Valid reports whether the discount type is a known value.
func (d DiscountType) Valid() bool {
	return d == DiscountFixed || d == DiscountPercentage
}

// Code is a promotional discount code. TimesUsed counts successful
// ledger applications; UsageLimit of zero means unlimited.
type Code struct {
	ID           uuid.UUID
	Code         string
	DiscountType DiscountType

	// Amount is minor currency units for fixed discounts and whole
	// percent for percentage discounts.
	Amount int64

	UsageLimit int
	TimesUsed  int
	ExpiresAt  *time.Time
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize returns the canonical form of a user-supplied code string.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount returns the amount after applying the code. Fixed discounts
// subtract minor units, percentage discounts scale. The result never
// drops below zero.
func (c *Code) Discount(amount int64) int64 {
	var discounted int64
	switch c.DiscountType {
	case DiscountFixed:
		discounted = amount - c.Amount
	case DiscountPercentage:
		discounted = amount - amount*c.Amount/100
	default:
		return amount
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}

// Usable reports whether the code can still be offered at checkout:
// active and not past its expiry. It does not check the usage limit;
// that is enforced atomically at application time.
func (c *Code) Usable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	return true
}

package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind is how a discount descriptor computes the new total.
type DiscountKind string

const (
	// DiscountPercentage subtracts value percent of the total
	DiscountPercentage DiscountKind = "PERCENTAGE"
	// DiscountFixedAmount subtracts value from the total
	DiscountFixedAmount DiscountKind = "FIXED_AMOUNT"
)

// Descriptor is a server-issued discount code together with its computation
// kind and value. It is applied transiently to the displayed total and never
// persisted client-side.
type Descriptor struct {
	Code    string
	Kind    DiscountKind
	Value   decimal.Decimal
	Expires time.Time
}

// Apply computes the discounted total for a single descriptor, clamped at
// zero. Expiry is validated server-side when the code is looked up, so the
// calculator performs no date check. Apply has no concept of "already
// applied"; keeping at most one descriptor active is the Cart's job.
func Apply(total decimal.Decimal, d Descriptor) decimal.Decimal {
	var discounted decimal.Decimal
	switch d.Kind {
	case DiscountPercentage:
		discounted = total.Sub(total.Mul(d.Value).Div(decimal.NewFromInt(100)))
	case DiscountFixedAmount:
		discounted = total.Sub(d.Value)
	default:
		return total
	}

	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}

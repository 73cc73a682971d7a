package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

var hundred = decimal.NewFromInt(100)

// Default rule applied when a service has no active commission rule.
var (
	DefaultCommissionPct  = decimal.NewFromInt(20)
	DefaultPlatformFeePct = decimal.Zero
	DefaultGSTPct         = decimal.NewFromInt(18)
)

// Rates is the percentage schedule a breakdown is computed from.
type Rates struct {
	CommissionPct  decimal.Decimal
	PlatformFeePct decimal.Decimal
	GSTPct         decimal.Decimal
}

// DefaultRates returns 20% commission, 0% platform fee, 18% GST.
func DefaultRates() Rates {
	return Rates{
		CommissionPct:  DefaultCommissionPct,
		PlatformFeePct: DefaultPlatformFeePct,
		GSTPct:         DefaultGSTPct,
	}
}

// Validate rejects negative percentages.
func (r Rates) Validate() error {
	switch {
	case r.CommissionPct.IsNegative():
		return apperr.Wrap(apperr.ErrInvalidArgument, "commission percentage must not be negative, got %s", r.CommissionPct)
	case r.PlatformFeePct.IsNegative():
		return apperr.Wrap(apperr.ErrInvalidArgument, "platform fee percentage must not be negative, got %s", r.PlatformFeePct)
	case r.GSTPct.IsNegative():
		return apperr.Wrap(apperr.ErrInvalidArgument, "gst percentage must not be negative, got %s", r.GSTPct)
	}
	return nil
}

// Breakdown is the full price split of a booking.
type Breakdown struct {
	BasePrice   decimal.Decimal `json:"basePrice"`
	Commission  decimal.Decimal `json:"commission"`
	PlatformFee decimal.Decimal `json:"platformFee"`
	GST         decimal.Decimal `json:"gst"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	MaidAmount  decimal.Decimal `json:"maidAmount"`
}

// Calculate computes the breakdown for basePrice under rates.
//
//	commission  = base * commissionPct / 100
//	platformFee = base * platformFeePct / 100
//	subtotal    = base + commission + platformFee
//	gst         = subtotal * gstPct / 100
//	total       = subtotal + gst
//	maidAmount  = base - commission
//
// No rounding is applied; callers round at the persistence boundary.
func Calculate(basePrice decimal.Decimal, rates Rates) (Breakdown, error) {
	if !basePrice.IsPositive() {
		return Breakdown{}, apperr.Wrap(apperr.ErrInvalidArgument, "base price must be positive, got %s", basePrice)
	}
	if err := rates.Validate(); err != nil {
		return Breakdown{}, err
	}

	commission := basePrice.Mul(rates.CommissionPct).Div(hundred)
	platformFee := basePrice.Mul(rates.PlatformFeePct).Div(hundred)
	subtotal := basePrice.Add(commission).Add(platformFee)
	gst := subtotal.Mul(rates.GSTPct).Div(hundred)

	return Breakdown{
		BasePrice:   basePrice,
		Commission:  commission,
		PlatformFee: platformFee,
		GST:         gst,
		TotalAmount: subtotal.Add(gst),
		MaidAmount:  basePrice.Sub(commission),
	}, nil
}

// CalculateFloat is Calculate for float inputs; NaN and ±Inf are rejected.
func CalculateFloat(basePrice, commissionPct, platformFeePct, gstPct float64) (Breakdown, error) {
	vals := []float64{basePrice, commissionPct, platformFeePct, gstPct}
	dec := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Breakdown{}, apperr.Wrap(apperr.ErrInvalidArgument, "non-finite price component")
		}
		dec[i] = decimal.NewFromFloat(v)
	}
	return Calculate(dec[0], Rates{CommissionPct: dec[1], PlatformFeePct: dec[2], GSTPct: dec[3]})
}

// Round returns the breakdown rounded to currency precision (2 places).
func (b Breakdown) Round() Breakdown {
	return Breakdown{
		BasePrice:   b.BasePrice.Round(2),
		Commission:  b.Commission.Round(2),
		PlatformFee: b.PlatformFee.Round(2),
		GST:         b.GST.Round(2),
		TotalAmount: b.TotalAmount.Round(2),
		MaidAmount:  b.MaidAmount.Round(2),
	}
}

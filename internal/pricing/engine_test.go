package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(t, want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func TestCalculate_DefaultRatesOnThousand(t *testing.T) {
	b, err := Calculate(decimal.NewFromInt(1000), DefaultRates())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	assertDec(t, "commission", b.Commission, "200")
	assertDec(t, "platformFee", b.PlatformFee, "0")
	assertDec(t, "gst", b.GST, "216")
	assertDec(t, "totalAmount", b.TotalAmount, "1416")
	assertDec(t, "maidAmount", b.MaidAmount, "800")
}

func TestCalculate_DefaultRatesOnFiveHundred(t *testing.T) {
	b, err := Calculate(decimal.NewFromInt(500), DefaultRates())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	assertDec(t, "basePrice", b.BasePrice, "500")
	assertDec(t, "commission", b.Commission, "100")
	assertDec(t, "gst", b.GST, "108")
	assertDec(t, "totalAmount", b.TotalAmount, "708")
	assertDec(t, "maidAmount", b.MaidAmount, "400")
}

func TestCalculate_PlatformFeeEntersSubtotal(t *testing.T) {
	rates := Rates{
		CommissionPct:  decimal.NewFromInt(10),
		PlatformFeePct: decimal.NewFromInt(5),
		GSTPct:         decimal.NewFromInt(18),
	}
	b, err := Calculate(decimal.NewFromInt(200), rates)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	// subtotal = 200 + 20 + 10 = 230; gst = 41.4
	assertDec(t, "platformFee", b.PlatformFee, "10")
	assertDec(t, "gst", b.GST, "41.4")
	assertDec(t, "totalAmount", b.TotalAmount, "271.4")
	assertDec(t, "maidAmount", b.MaidAmount, "180")
}

func TestCalculate_Bounds(t *testing.T) {
	bases := []string{"0.01", "1", "99.99", "349.5", "1000", "123456.78"}
	rateSets := []Rates{
		DefaultRates(),
		{CommissionPct: decimal.Zero, PlatformFeePct: decimal.Zero, GSTPct: decimal.Zero},
		{CommissionPct: decimal.NewFromInt(100), PlatformFeePct: decimal.NewFromInt(3), GSTPct: decimal.NewFromInt(28)},
		{CommissionPct: dec(t, "12.5"), PlatformFeePct: dec(t, "2.25"), GSTPct: decimal.NewFromInt(5)},
	}

	for _, base := range bases {
		for _, rates := range rateSets {
			b, err := Calculate(dec(t, base), rates)
			if err != nil {
				t.Fatalf("Calculate(%s): %v", base, err)
			}
			if b.TotalAmount.LessThan(b.BasePrice) {
				t.Fatalf("total %s < base %s", b.TotalAmount, b.BasePrice)
			}
			if b.MaidAmount.GreaterThan(b.BasePrice) {
				t.Fatalf("maid amount %s > base %s", b.MaidAmount, b.BasePrice)
			}
		}
	}
}

func TestCalculate_RejectsNonPositiveBase(t *testing.T) {
	for _, base := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := Calculate(base, DefaultRates())
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("Calculate(%s) err = %v, want invalid argument", base, err)
		}
	}
}

func TestCalculate_RejectsNegativePercentage(t *testing.T) {
	rates := DefaultRates()
	rates.GSTPct = decimal.NewFromInt(-1)

	_, err := Calculate(decimal.NewFromInt(100), rates)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestCalculateFloat_RejectsNonFinite(t *testing.T) {
	cases := [][4]float64{
		{math.NaN(), 20, 0, 18},
		{100, math.Inf(1), 0, 18},
		{100, 20, math.Inf(-1), 18},
	}
	for _, c := range cases {
		_, err := CalculateFloat(c[0], c[1], c[2], c[3])
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("CalculateFloat(%v) err = %v, want invalid argument", c, err)
		}
	}
}

func TestBreakdown_Round(t *testing.T) {
	b, err := Calculate(dec(t, "333.33"), DefaultRates())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	r := b.Round()

	// commission = 66.666; subtotal = 399.996; gst = 71.99928; total = 471.99528
	assertDec(t, "commission", r.Commission, "66.67")
	assertDec(t, "gst", r.GST, "72")
	assertDec(t, "totalAmount", r.TotalAmount, "472")
	assertDec(t, "maidAmount", r.MaidAmount, "266.66")
}

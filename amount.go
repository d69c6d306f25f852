package payproc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// AmountScale is the number of fractional decimal digits an Amount carries.
const AmountScale = 4

// Amount is a fixed-point monetary value with exactly four fractional
// decimal digits. It wraps a decimal whose coefficient is an integer scaled
// by a power of ten, so add, subtract and compare are exact integer
// arithmetic and never round.
//
// Amount values are immutable. Negative amounts are representable: a held
// or available balance may legitimately go below zero under the permissive
// policy, it is the Ledger that refuses negative record amounts.
type Amount struct {
	value decimal.Decimal
}

// AmountFromUnits constructs an Amount from its scaled integer
// representation (value times 10^4).
func AmountFromUnits(units int64) Amount {
	return Amount{value: decimal.New(units, -AmountScale)}
}

// ParseAmount constructs an Amount from decimal text such as "12.5" or
// "24.4321". It fails on non-numeric text, and with ErrPrecisionTooHigh
// when the text carries more than four fractional digits: sub-unit
// precision is never silently truncated.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if d.Exponent() < -AmountScale {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, ErrPrecisionTooHigh)
	}
	return Amount{value: d}, nil
}

// Units returns the scaled integer representation (value times 10^4).
func (a Amount) Units() int64 { return a.value.Shift(AmountScale).IntPart() }

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// binary operators.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount         { return Amount{value: a.value.Neg()} }

// comparisons.
func (a Amount) Equal(b Amount) bool    { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool { return a.value.LessThan(b.value) }
func (a Amount) IsNegative() bool       { return a.value.IsNegative() }
func (a Amount) IsZero() bool           { return a.value.IsZero() }

// String returns the minimal decimal text of the amount: "12.5", "2",
// "24.4321". Trailing fractional zeros are dropped.
func (a Amount) String() string {
	s := a.value.StringFixed(AmountScale)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// StringFixed4 returns the amount with all four fractional digits, the
// form used by report rows.
func (a Amount) StringFixed4() string { return a.value.StringFixed(AmountScale) }

// MarshalJSON implements json.Marshaler as a bare decimal number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler, enforcing the four fractional
// digit bound just like ParseAmount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	if d.Exponent() < -AmountScale {
		return fmt.Errorf("amount %s: %w", d, ErrPrecisionTooHigh)
	}
	a.value = d
	return nil
}

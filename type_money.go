package bondbook

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayPlaces is the number of decimal places incomes are rounded to when shown.
const displayPlaces = 2

// Amount is an income value. It accumulates exactly and is only rounded when
// displayed or encoded.
type Amount struct {
	value decimal.Decimal
}

// A returns an Amount of value.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func (a Amount) Add(b Amount) Amount           { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Mul(d decimal.Decimal) Amount  { return Amount{value: a.value.Mul(d)} }
func (a Amount) Equal(b Amount) bool           { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool        { return a.value.LessThan(b.value) }
func (a Amount) IsZero() bool                  { return a.value.IsZero() }
func (a Amount) Decimal() decimal.Decimal      { return a.value }
func (a Amount) Rounded() decimal.Decimal      { return a.value.Round(displayPlaces) }
func (a Amount) InexactFloat64() float64       { return a.Rounded().InexactFloat64() }
func (a Amount) In(currency string) Money      { return Money{Amount: a, cur: currency} }
func (a Amount) GreaterThan(b Amount) bool     { return a.value.GreaterThan(b.value) }
func (a Amount) Cmp(b Amount) int              { return a.value.Cmp(b.value) }
func (a Amount) String() string                { return a.value.StringFixed(displayPlaces) }
func (a Amount) MarshalJSON() ([]byte, error)  { return []byte(a.String()), nil }
func (a *Amount) UnmarshalJSON(b []byte) error { return a.value.UnmarshalJSON(b) }

// Money is an Amount in a currency, used for human facing totals.
type Money struct {
	Amount
	cur string
}

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

// currency returns the full go-money currency, never nil.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency symbol and separators, always
// with two decimal places.
func (m Money) String() string {
	if m.cur == "" {
		return m.Amount.String()
	}
	cur := m.currency()
	f := cur.Formatter()
	f.Fraction = displayPlaces
	return f.Format(m.value.Shift(displayPlaces).Round(0).IntPart())
}

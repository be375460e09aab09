package bondbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// ID identifies an instrument in a book. It is opaque and never reused.
type ID string

// NewID returns a fresh, time ordered identifier.
func NewID() ID { return ID(ulid.Make().String()) }

// Coupon is the payout per held unit, as typed by the user ("1.5" or "1,5").
type Coupon string

// Rate parses the coupon. ok is false when the coupon is empty, not a number or
// negative, in which case the rate is zero.
func (c Coupon) Rate() (rate decimal.Decimal, ok bool) {
	if strings.TrimSpace(string(c)) == "" {
		return decimal.Zero, false
	}
	d, err := parseDecimal(string(c))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Instrument is a bond-like holding paying a coupon in some months of the year.
type Instrument struct {
	ID     ID
	Name   string
	Held   Quantity
	Months []Month
	Coupon Coupon
}

// NewInstrument returns a placeholder instrument as created by the add intent:
// one unit held, everything else empty.
func NewInstrument(id ID) Instrument {
	return Instrument{
		ID:     id,
		Held:   Q(1),
		Months: []Month{},
	}
}

// PaysIn reports whether the instrument pays in month m.
func (i Instrument) PaysIn(m Month) bool { return slices.Contains(i.Months, m) }

// Clone returns a copy of i that does not share its months.
func (i Instrument) Clone() Instrument {
	i.Months = slices.Clone(i.Months)
	return i
}

// payingMonths returns the valid distinct months the instrument pays in.
func (i Instrument) payingMonths() []Month {
	out := make([]Month, 0, len(i.Months))
	for _, m := range distinctMonths(i.Months) {
		if m.Valid() {
			out = append(out, m)
		}
	}
	return out
}

// Draft holds the field values submitted when an instrument is edited.
type Draft struct {
	Name   string  `json:"name"`
	Held   string  `json:"heldQuantity"`
	Months []Month `json:"payoutMonths"`
	Coupon Coupon  `json:"couponRate"`
}

// DraftOf returns a draft pre-filled with the current values of i.
func DraftOf(i Instrument) Draft {
	held := ""
	if !i.Held.IsZero() {
		held = i.Held.String()
	}
	return Draft{
		Name:   i.Name,
		Held:   held,
		Months: slices.Clone(i.Months),
		Coupon: i.Coupon,
	}
}

// Validate checks that every required field is present. It returns a
// *ValidationError listing each missing field.
func (d Draft) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.Name) == "" {
		verr.add("name", "name is required")
	}
	if strings.TrimSpace(d.Held) == "" {
		verr.add("heldQuantity", "held quantity is required")
	}
	if len(d.Months) == 0 {
		verr.add("payoutMonths", "at least one payout month is required")
	}
	for _, m := range d.Months {
		if !m.Valid() {
			verr.add("payoutMonths", fmt.Sprintf("month %d is out of range [1,12]", int(m)))
			break
		}
	}
	if strings.TrimSpace(string(d.Coupon)) == "" {
		verr.add("couponRate", "coupon is required")
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

// apply replaces every field of i except its id with the draft values.
// A held quantity that is not a number is stored as zero.
func (d Draft) apply(i Instrument) Instrument {
	held, err := ParseQuantity(d.Held)
	if err != nil {
		held = Quantity{}
	}
	months := distinctMonths(d.Months)
	if months == nil {
		months = []Month{}
	}
	return Instrument{
		ID:     i.ID,
		Name:   strings.TrimSpace(d.Name),
		Held:   held,
		Months: months,
		Coupon: Coupon(strings.TrimSpace(string(d.Coupon))),
	}
}

// ValidationError reports the fields of a draft that block saving it.
type ValidationError struct {
	// Fields maps a field name to the message to show next to it.
	Fields map[string]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = k + ": " + e.Fields[k]
	}
	return "invalid instrument: " + strings.Join(msgs, "; ")
}

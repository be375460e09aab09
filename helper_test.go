package bondbook

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/bondbook/date"
)

// bond returns an instrument for tests.
func bond(id ID, name string, held int, coupon Coupon, months ...Month) Instrument {
	if months == nil {
		months = []Month{}
	}
	return Instrument{ID: id, Name: name, Held: Q(held), Months: months, Coupon: coupon}
}

// ids returns the ids of instruments, comma separated, in order.
func ids(instruments []Instrument) string {
	var s []string
	for _, i := range instruments {
		s = append(s, string(i.ID))
	}
	return strings.Join(s, ",")
}

// memoryStorage keeps the saved instruments, and fails every save when fail
// is set.
type memoryStorage struct {
	saved []Instrument
	saves int
	fail  error
}

func (m *memoryStorage) Load(ctx context.Context) ([]Instrument, error) {
	return NewBook(m.saved).Instruments(), nil
}

func (m *memoryStorage) Save(ctx context.Context, instruments []Instrument) error {
	if m.fail != nil {
		return m.fail
	}
	m.saves++
	m.saved = NewBook(instruments).Instruments()
	return nil
}

func mustDate(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

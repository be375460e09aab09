package bondbook

import (
	"slices"
	"sort"
	"time"

	"github.com/etnz/bondbook/date"
)

const (
	// lowestMonths is how many distinct lowest monthly incomes are targeted.
	lowestMonths = 3
	// maxRecommendations is how many instruments are recommended at most.
	maxRecommendations = 3
)

// Recommend selects the instruments worth adding more of to lift the weakest
// months.
//
// It takes the 3 lowest distinct values of monthly, selects every instrument
// paying in a month whose income is one of them, and ranks the selection by
// descending coupon rate, then by the number of months until its next payout
// counted from current. The first 3 are returned. Instruments equal on both
// keys keep their book order, so the cut at 3 may drop some of them.
func Recommend(instruments []Instrument, monthly MonthlyIncome, current time.Month) []Instrument {
	lowest := lowestDistinct(monthly, lowestMonths)
	isLow := func(m Month) bool {
		income := monthly.In(m)
		return slices.ContainsFunc(lowest, income.Equal)
	}

	selected := make([]Instrument, 0)
	for _, i := range instruments {
		if slices.ContainsFunc(i.payingMonths(), isLow) {
			selected = append(selected, i)
		}
	}

	sort.SliceStable(selected, func(a, b int) bool {
		ra, _ := selected[a].Coupon.Rate()
		rb, _ := selected[b].Coupon.Rate()
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return NextPayoutIn(selected[a], current) < NextPayoutIn(selected[b], current)
	})

	if len(selected) > maxRecommendations {
		selected = selected[:maxRecommendations]
	}
	return selected
}

// NextPayoutIn returns the number of whole months from current until i next
// pays: 0 if it pays in current, 12 if it pays in no month.
func NextPayoutIn(i Instrument, current time.Month) int {
	cur := int(current) - 1
	distance := 12
	for _, m := range i.payingMonths() {
		if d := (m.Index() - cur + 12) % 12; d < distance {
			distance = d
		}
	}
	return distance
}

// NextPayout returns the first day of the month of i's next payout, counted
// from on. ok is false when i pays in no month.
func NextPayout(i Instrument, on date.Date) (next date.Date, ok bool) {
	n := NextPayoutIn(i, on.Month())
	if n == 12 {
		return date.Date{}, false
	}
	return on.StartOfMonth(n), true
}

// lowestDistinct returns up to n of the lowest distinct incomes, ascending.
func lowestDistinct(monthly MonthlyIncome, n int) []Amount {
	values := make([]Amount, 0, len(monthly))
	for _, a := range monthly {
		if !slices.ContainsFunc(values, a.Equal) {
			values = append(values, a)
		}
	}
	slices.SortFunc(values, Amount.Cmp)
	if len(values) > n {
		values = values[:n]
	}
	return values
}

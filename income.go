package bondbook

import "github.com/shopspring/decimal"

// MonthlyIncome holds the income of each month of the year, January first.
type MonthlyIncome [12]Amount

// In returns the income of month m.
func (mi MonthlyIncome) In(m Month) Amount { return mi[m.Index()] }

// Sum returns the income of the whole year.
func (mi MonthlyIncome) Sum() Amount {
	var total Amount
	for _, a := range mi {
		total = total.Add(a)
	}
	return total
}

// Max returns the highest monthly income.
func (mi MonthlyIncome) Max() Amount {
	top := mi[0]
	for _, a := range mi[1:] {
		if a.GreaterThan(top) {
			top = a
		}
	}
	return top
}

// Annual is the yearly income of one instrument.
type Annual struct {
	ID ID `json:"id"`
	// Priced is false when the instrument lacks a coupon or payout months: it
	// then has no income to show and contributes nothing.
	Priced bool   `json:"priced"`
	Amount Amount `json:"amount"`
}

// Income is the aggregated income of a sequence of instruments.
type Income struct {
	Monthly MonthlyIncome `json:"monthly"`
	Annual  []Annual      `json:"annual"` // aligned with the instruments
	Total   Amount        `json:"total"`
}

// PerPayout returns the income paid by i in each of its payout months:
// coupon rate × held quantity. ok is false if i has no usable coupon.
func PerPayout(i Instrument) (Amount, bool) {
	rate, ok := i.Coupon.Rate()
	if !ok {
		return Amount{}, false
	}
	return i.Held.Mul(rate), true
}

// AnnualIncome returns coupon rate × held quantity × number of payout months.
func AnnualIncome(i Instrument) Annual {
	a := Annual{ID: i.ID}
	payout, ok := PerPayout(i)
	months := i.payingMonths()
	if !ok || len(months) == 0 {
		return a
	}
	a.Priced = true
	a.Amount = payout.Mul(decimal.NewFromInt(int64(len(months))))
	return a
}

// Aggregate computes the monthly income vector, the annual income of each
// instrument and the grand total. Values are exact, callers round on display.
func Aggregate(instruments []Instrument) Income {
	inc := Income{Annual: make([]Annual, len(instruments))}
	for k, i := range instruments {
		annual := AnnualIncome(i)
		inc.Annual[k] = annual
		if !annual.Priced {
			continue
		}
		payout, _ := PerPayout(i)
		for _, m := range i.payingMonths() {
			inc.Monthly[m.Index()] = inc.Monthly[m.Index()].Add(payout)
		}
		inc.Total = inc.Total.Add(annual.Amount)
	}
	return inc
}

// AnnualOf returns the annual income computed for instrument id.
func (inc Income) AnnualOf(id ID) (Annual, bool) {
	for _, a := range inc.Annual {
		if a.ID == id {
			return a, true
		}
	}
	return Annual{}, false
}

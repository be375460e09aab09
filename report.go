package bondbook

import (
	"time"

	"github.com/etnz/bondbook/date"
)

// Report is everything a presentation layer needs to draw a book: the rows,
// the chart, the totals, the recommendations and what to highlight.
type Report struct {
	Currency    string        `json:"currency"`
	On          date.Date     `json:"on"`
	Month       time.Month    `json:"currentMonth"`
	Instruments []Instrument  `json:"instruments"`
	Editing     ID            `json:"editing,omitempty"`
	Monthly     MonthlyIncome `json:"monthlyIncome"`
	Annual      []Annual      `json:"annualIncome"`
	Total       Amount        `json:"total"`
	Recommended []Instrument  `json:"recommended"`
	NextPayouts []date.Date   `json:"nextPayouts"`
	Highlight   Highlight     `json:"highlight"`
	hover       Hover
}

// NewReport computes the report of a book as seen on day on, with the user
// pointing at hover. Recommendations are ranked from on's month.
func NewReport(b Book, currency string, on date.Date, hover Hover) *Report {
	instruments := b.Instruments()
	inc := Aggregate(instruments)
	current := on.Month()
	r := &Report{
		Currency:    currency,
		On:          on,
		Month:       current,
		Instruments: instruments,
		Monthly:     inc.Monthly,
		Annual:      inc.Annual,
		Total:       inc.Total,
		Recommended: Recommend(instruments, inc.Monthly, current),
		Highlight:   HighlightOf(instruments, hover),
		hover:       hover,
	}
	if e, ok := b.Editing(); ok {
		r.Editing = e.ID
	}
	if r.Recommended == nil {
		r.Recommended = []Instrument{}
	}
	r.NextPayouts = make([]date.Date, len(r.Recommended))
	for k, i := range r.Recommended {
		r.NextPayouts[k], _ = NextPayout(i, on)
	}
	return r
}

// Hover returns what the report highlights for.
func (r *Report) Hover() Hover { return r.hover }

// TotalMoney returns the grand total in the report currency.
func (r *Report) TotalMoney() Money { return r.Total.In(r.Currency) }

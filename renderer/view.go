package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/date"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// barWidth is the number of characters of the longest bar of the chart.
const barWidth = 30

// view is the data handed to the report templates.
type view struct {
	*bondbook.Report
	Table           string
	Bars            []bar
	Recommendations []recommendation
}

// bar is one line of the monthly chart.
type bar struct {
	Month       bondbook.Month
	Label       string
	Bar         string
	Amount      string
	Highlighted bool
	Current     bool
}

// recommendation is one recommended instrument.
type recommendation struct {
	Rank       int
	Name       string
	Coupon     string
	Months     string
	NextPayout date.Date
	Highlight  bool
}

func newView(r *bondbook.Report) *view {
	v := &view{Report: r}
	v.Table = table(r)
	v.Bars = bars(r)
	for k, i := range r.Recommended {
		rec := recommendation{
			Rank:      k + 1,
			Name:      displayName(i),
			Coupon:    string(i.Coupon),
			Months:    bondbook.MonthNames(i.Months),
			Highlight: r.Highlight.HasRow(i.ID),
		}
		if k < len(r.NextPayouts) {
			rec.NextPayout = r.NextPayouts[k]
		}
		v.Recommendations = append(v.Recommendations, rec)
	}
	return v
}

// displayName returns the instrument name, or a placeholder for a new row.
func displayName(i bondbook.Instrument) string {
	if strings.TrimSpace(i.Name) == "" {
		return "(unnamed)"
	}
	return i.Name
}

// table renders the instruments table, highlighted rows in bold.
func table(r *bondbook.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	t := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"#", "Name", "Held", "Payout Months", "Coupon", "Annual Income"},
	}
	for k, i := range r.Instruments {
		annual := ""
		if k < len(r.Annual) && r.Annual[k].Priced {
			annual = r.Annual[k].Amount.String()
		}
		row := []string{
			fmt.Sprint(k + 1),
			displayName(i),
			i.Held.String(),
			bondbook.MonthNames(i.Months),
			string(i.Coupon),
			annual,
		}
		if i.ID == r.Editing {
			row[1] += " ✎"
		}
		if r.Highlight.HasRow(i.ID) {
			for c := range row {
				if row[c] != "" {
					row[c] = md.Bold(row[c])
				}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	t.Rows = append(t.Rows, []string{"", md.Bold("Total"), "", "", "", md.Bold(r.TotalMoney().String())})
	doc.Table(t)
	return doc.String()
}

// bars computes the chart lines, scaled to the highest month.
func bars(r *bondbook.Report) []bar {
	top := r.Monthly.Max().Decimal()
	width := decimal.NewFromInt(barWidth)
	out := make([]bar, 0, 12)
	for _, m := range bondbook.AllMonths() {
		a := r.Monthly.In(m)
		n := 0
		if top.IsPositive() {
			n = int(a.Decimal().Div(top).Mul(width).Round(0).IntPart())
		}
		if n == 0 && a.Decimal().IsPositive() {
			n = 1
		}
		out = append(out, bar{
			Month:       m,
			Label:       m.Short(),
			Bar:         strings.Repeat("█", n) + strings.Repeat(" ", barWidth-n),
			Amount:      a.String(),
			Highlighted: r.Highlight.HasMonth(m),
			Current:     int(m) == int(r.Month),
		})
	}
	return out
}

// instrumentView is the data handed to the instrument template.
type instrumentView struct {
	bondbook.Instrument
	Name   string
	Months string
	Annual string
}

func newInstrumentView(i bondbook.Instrument, currency string) instrumentView {
	v := instrumentView{Instrument: i, Name: displayName(i), Months: bondbook.MonthNames(i.Months)}
	if a := bondbook.AnnualIncome(i); a.Priced {
		v.Annual = a.Amount.In(currency).String()
	}
	return v
}

package bondbook

import "slices"

// Hover is what the user is pointing at: a table row, a chart bar or a
// recommendation. At most one field is expected to be set.
type Hover struct {
	Row         ID    `json:"row,omitempty"`
	Month       Month `json:"month,omitempty"`
	Recommended ID    `json:"recommended,omitempty"`
}

// Highlight lists the rows and months to emphasize for a Hover.
type Highlight struct {
	Rows   []ID    `json:"rows"`
	Months []Month `json:"months"`
}

// HasRow reports whether row id is highlighted.
func (h Highlight) HasRow(id ID) bool { return slices.Contains(h.Rows, id) }

// HasMonth reports whether month m is highlighted.
func (h Highlight) HasMonth(m Month) bool { return slices.Contains(h.Months, m) }

// HighlightOf computes the highlight for a hover:
//   - a chart bar highlights itself and every row paying in that month,
//   - a row highlights itself, its payout months, and every row paying in
//     one of them,
//   - a recommendation highlights its row.
func HighlightOf(instruments []Instrument, h Hover) Highlight {
	hl := Highlight{Rows: []ID{}, Months: []Month{}}
	if h.Month.Valid() {
		hl.Months = append(hl.Months, h.Month)
		for _, i := range instruments {
			if i.PaysIn(h.Month) {
				hl.Rows = append(hl.Rows, i.ID)
			}
		}
	}
	if k := slices.IndexFunc(instruments, func(i Instrument) bool { return i.ID == h.Row }); h.Row != "" && k >= 0 {
		hl.Rows = appendNew(hl.Rows, h.Row)
		months := instruments[k].payingMonths()
		for _, m := range months {
			hl.Months = appendNew(hl.Months, m)
		}
		for _, i := range instruments {
			if slices.ContainsFunc(months, i.PaysIn) {
				hl.Rows = appendNew(hl.Rows, i.ID)
			}
		}
	}
	if h.Recommended != "" && slices.ContainsFunc(instruments, func(i Instrument) bool { return i.ID == h.Recommended }) {
		hl.Rows = appendNew(hl.Rows, h.Recommended)
	}
	return hl
}

func appendNew[T comparable](list []T, v T) []T {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

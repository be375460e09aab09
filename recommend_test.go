package bondbook

import (
	"testing"
	"time"
)

// monthlyOf returns a monthly income of 100 in every month but the given ones.
func monthlyOf(incomes map[Month]int) MonthlyIncome {
	var mi MonthlyIncome
	for _, m := range AllMonths() {
		mi[m.Index()] = A(100)
		if v, ok := incomes[m]; ok {
			mi[m.Index()] = A(v)
		}
	}
	return mi
}

func TestRecommend(t *testing.T) {
	// March and June tie for the lowest income: the three lowest distinct
	// incomes are 0, 10 and 20, in March, June, September and December.
	monthly := monthlyOf(map[Month]int{3: 0, 6: 0, 9: 10, 12: 20})
	book := []Instrument{
		bond("a", "a", 1, "2", 3),
		bond("b", "b", 1, "5", 1),
		bond("c", "c", 1, "3", 9),
		bond("d", "d", 1, "3", 12),
		bond("e", "e", 1, "1", 6),
	}

	tests := []struct {
		name        string
		instruments []Instrument
		current     time.Month
		want        string
	}{
		{
			name:        "highest coupons first",
			instruments: book,
			current:     time.January,
			want:        "c,d,a",
		},
		{
			name:        "nearest payout breaks ties",
			instruments: book,
			current:     time.October,
			want:        "d,c,a",
		},
		{
			name:        "paying in current month is nearest",
			instruments: book,
			current:     time.September,
			want:        "c,d,a",
		},
		{
			name:        "fewer candidates than three",
			instruments: book[:2],
			current:     time.January,
			want:        "a",
		},
		{
			name:        "empty book",
			instruments: nil,
			current:     time.January,
			want:        "",
		},
		{
			name: "full ties keep book order and are cut",
			instruments: []Instrument{
				bond("w", "w", 1, "1", 3),
				bond("x", "x", 1, "1", 3),
				bond("y", "y", 1, "1", 3),
				bond("z", "z", 1, "1", 3),
			},
			current: time.January,
			want:    "w,x,y",
		},
		{
			name: "unpriced coupons rank last",
			instruments: []Instrument{
				bond("u", "u", 1, "", 3),
				bond("v", "v", 1, "0,5", 6),
			},
			current: time.January,
			want:    "v,u",
		},
		{
			name: "not paying in a low month",
			instruments: []Instrument{
				bond("b", "b", 1, "5", 1, 2),
				bond("n", "n", 1, "5"),
			},
			current: time.January,
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Recommend(tt.instruments, monthly, tt.current))
			if got != tt.want {
				t.Errorf("Recommend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecommend_FromAggregate(t *testing.T) {
	instruments := []Instrument{
		bond("a", "a", 10, "1.5", 1, 2),
		bond("b", "b", 5, "2", 3),
	}
	inc := Aggregate(instruments)
	// The lowest incomes are 0 (April to December), 10 (March) and 15
	// (January and February): both instruments are candidates.
	got := ids(Recommend(instruments, inc.Monthly, time.March))
	if want := "b,a"; got != want {
		t.Errorf("Recommend() = %q, want %q", got, want)
	}
}

func TestNextPayoutIn(t *testing.T) {
	tests := []struct {
		months  []Month
		current time.Month
		want    int
	}{
		{[]Month{3}, time.March, 0},
		{[]Month{3}, time.April, 11},
		{[]Month{3}, time.January, 2},
		{[]Month{1, 7}, time.August, 5},
		{[]Month{12}, time.January, 11},
		{[]Month{}, time.January, 12},
		{[]Month{13}, time.January, 12},
	}
	for _, tt := range tests {
		i := bond("a", "a", 1, "1", tt.months...)
		if got := NextPayoutIn(i, tt.current); got != tt.want {
			t.Errorf("NextPayoutIn(%v, %v) = %d, want %d", tt.months, tt.current, got, tt.want)
		}
	}
}

func TestNextPayout(t *testing.T) {
	on := mustDate(t, "2024-11-15")

	got, ok := NextPayout(bond("a", "a", 1, "1", 2, 8), on)
	if !ok || got != mustDate(t, "2025-02-01") {
		t.Errorf("NextPayout() = %v, %v, want 2025-02-01", got, ok)
	}
	got, ok = NextPayout(bond("a", "a", 1, "1", 11), on)
	if !ok || got != mustDate(t, "2024-11-01") {
		t.Errorf("NextPayout() = %v, %v, want 2024-11-01", got, ok)
	}
	if _, ok := NextPayout(bond("a", "a", 1, "1"), on); ok {
		t.Error("NextPayout() of an instrument paying in no month is ok")
	}
}

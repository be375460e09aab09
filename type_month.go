package bondbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month is a calendar month in which an instrument pays, from 1 (January) to 12.
type Month int

// Valid reports whether m is in [1,12].
func (m Month) Valid() bool { return m >= 1 && m <= 12 }

// Index returns the 0-based slot of the month in a MonthlyIncome.
func (m Month) Index() int { return int(m) - 1 }

// String returns the English month name.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return time.Month(m).String()
}

// Short returns the three letter month name.
func (m Month) Short() string {
	if !m.Valid() {
		return m.String()
	}
	return m.String()[:3]
}

// AllMonths returns all the months of the year in order.
func AllMonths() []Month {
	all := make([]Month, 12)
	for i := range all {
		all[i] = Month(i + 1)
	}
	return all
}

// russianMonths are the names the browser tool displayed; accepted on input.
var russianMonths = []string{"январь", "февраль", "март", "апрель", "май", "июнь", "июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь"}

// ParseMonth parses a month number ("3"), an English name or prefix of at least
// three letters ("mar", "March") or a Russian name ("март").
func ParseMonth(s string) (Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty month")
	}
	if n, err := strconv.Atoi(s); err == nil {
		m := Month(n)
		if !m.Valid() {
			return 0, fmt.Errorf("month %d out of range [1,12]", n)
		}
		return m, nil
	}
	for _, m := range AllMonths() {
		name := strings.ToLower(m.String())
		if len([]rune(s)) >= 3 && strings.HasPrefix(name, s) {
			return m, nil
		}
		if russianMonths[m.Index()] == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

// ParseMonths parses a comma separated list of months, dropping duplicates but
// keeping the order in which they were given.
func ParseMonths(s string) ([]Month, error) {
	months := make([]Month, 0, 12)
	for _, field := range strings.Split(s, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		m, err := ParseMonth(field)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return distinctMonths(months), nil
}

// distinctMonths returns months without duplicates, first occurrence wins.
func distinctMonths(months []Month) []Month {
	var seen [13]bool
	out := make([]Month, 0, len(months))
	for _, m := range months {
		if m.Valid() && seen[m] {
			continue
		}
		if m.Valid() {
			seen[m] = true
		}
		out = append(out, m)
	}
	return out
}

// MonthNames joins the names of months, in the given order.
func MonthNames(months []Month) string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}

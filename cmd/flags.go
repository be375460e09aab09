package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/date"
	"github.com/google/subcommands"
)

// reportFlags are the flags shared by the commands showing a report.
type reportFlags struct {
	on         date.Date
	month      string
	hoverMonth string
	hoverRow   string
	hoverReco  string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet, hover bool) {
	r.on = date.Today()
	f.Var(&r.on, "on", "Day the report is computed for, next payouts are counted from it (YYYY-MM-DD)")
	f.StringVar(&r.month, "month", "", "Current month, overrides the month of -on (number or name)")
	if !hover {
		return
	}
	f.StringVar(&r.hoverMonth, "hover-month", "", "Highlight the bonds paying in this month")
	f.StringVar(&r.hoverRow, "hover-row", "", "Highlight the payout months of this bond id")
	f.StringVar(&r.hoverReco, "hover-recommended", "", "Highlight this recommended bond id")
}

// report computes the report of the book as selected by the flags.
func (r *reportFlags) report(b bondbook.Book) (*bondbook.Report, error) {
	on := r.on
	if r.month != "" {
		m, err := bondbook.ParseMonth(r.month)
		if err != nil {
			return nil, err
		}
		on = date.New(on.Year(), time.Month(m), 1)
	}
	h := bondbook.Hover{
		Row:         bondbook.ID(r.hoverRow),
		Recommended: bondbook.ID(r.hoverReco),
	}
	if r.hoverMonth != "" {
		m, err := bondbook.ParseMonth(r.hoverMonth)
		if err != nil {
			return nil, err
		}
		h.Month = m
	}
	return bondbook.NewReport(b, *currency, on, h), nil
}

// draftFlags are the fields of an instrument given on the command line.
type draftFlags struct {
	name   string
	held   string
	months string
	coupon string
}

func (d *draftFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.name, "n", "", "Name of the bond")
	f.StringVar(&d.held, "q", "", "Held quantity")
	f.StringVar(&d.months, "m", "", "Payout months, comma separated numbers or names (see topic months)")
	f.StringVar(&d.coupon, "c", "", "Coupon paid per unit on each payout, '.' or ',' as decimal separator")
}

// apply overrides the fields of draft whose flags were set in f.
func (d *draftFlags) apply(f *flag.FlagSet, draft bondbook.Draft) (bondbook.Draft, error) {
	var err error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "n":
			draft.Name = d.name
		case "q":
			draft.Held = d.held
		case "m":
			var months []bondbook.Month
			months, err = bondbook.ParseMonths(d.months)
			draft.Months = months
		case "c":
			draft.Coupon = bondbook.Coupon(d.coupon)
		}
	})
	return draft, err
}

// anySet reports whether one of the draft flags was set.
func (d *draftFlags) anySet(f *flag.FlagSet) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "n", "q", "m", "c":
			set = true
		}
	})
	return set
}

// printMutationError prints err and returns the matching exit status.
func printMutationError(err error) subcommands.ExitStatus {
	var verr *bondbook.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, "Error: the bond cannot be saved:")
		for _, field := range sortedKeys(verr.Fields) {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, verr.Fields[field])
		}
		return subcommands.ExitUsageError
	}
	if errors.Is(err, bondbook.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Fprintf(os.Stderr, "Error saving the book: %v\n", err)
	return subcommands.ExitFailure
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// position parses a 1-based row number as shown by list, into an index.
func position(s string) (int, error) {
	var n int
	if _, err := fmt.Sscan(strings.TrimPrefix(s, "#"), &n); err != nil {
		return 0, fmt.Errorf("invalid row number %q", s)
	}
	return n - 1, nil
}

// resolveID returns the id of the instrument designated by ref: either its id
// or its row number prefixed with '#'.
func resolveID(b bondbook.Book, ref string) (bondbook.ID, error) {
	if strings.HasPrefix(ref, "#") {
		k, err := position(ref)
		if err != nil {
			return "", err
		}
		instruments := b.Instruments()
		if k < 0 || k >= len(instruments) {
			return "", fmt.Errorf("no row %s, the book has %d rows", ref, len(instruments))
		}
		return instruments[k].ID, nil
	}
	return bondbook.ID(ref), nil
}

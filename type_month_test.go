package bondbook

import (
	"slices"
	"testing"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    Month
		wantErr bool
	}{
		{"3", 3, false},
		{" 12 ", 12, false},
		{"mar", 3, false},
		{"March", 3, false},
		{"SEPT", 9, false},
		{"март", 3, false},
		{"Декабрь", 12, false},
		{"ma", 0, true},
		{"0", 0, true},
		{"13", 0, true},
		{"", 0, true},
		{"smarch", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMonth(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMonths(t *testing.T) {
	got, err := ParseMonths("jul, 1,july,,12")
	if err != nil {
		t.Fatalf("ParseMonths() error = %v", err)
	}
	if want := []Month{7, 1, 12}; !slices.Equal(got, want) {
		t.Errorf("ParseMonths() = %v, want %v", got, want)
	}
	if _, err := ParseMonths("1,foo"); err == nil {
		t.Error("ParseMonths(1,foo) succeeded")
	}
	if got, _ := ParseMonths(""); len(got) != 0 {
		t.Errorf("ParseMonths(\"\") = %v, want empty", got)
	}
}

func TestMonth_String(t *testing.T) {
	if got := Month(2).Short(); got != "Feb" {
		t.Errorf("Short() = %q", got)
	}
	if got := Month(13).String(); got != "Month(13)" {
		t.Errorf("String() = %q", got)
	}
	if got := MonthNames([]Month{1, 7}); got != "January, July" {
		t.Errorf("MonthNames() = %q", got)
	}
}

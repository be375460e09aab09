package bondbook

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeInstruments(t *testing.T) {
	instruments := []Instrument{
		bond("01J", "OFZ 26238", 10, "35,4", 1, 7),
		bond("01K", "RZD", 5, "2.0", 3),
	}
	var b bytes.Buffer
	if err := EncodeInstruments(&b, instruments); err != nil {
		t.Fatalf("EncodeInstruments() error = %v", err)
	}
	want := `[
{"id":"01J","name":"OFZ 26238","heldQuantity":10,"payoutMonths":[1,7],"couponRate":"35,4"},
{"id":"01K","name":"RZD","heldQuantity":5,"payoutMonths":[3],"couponRate":"2.0"}
]
`
	if got := b.String(); got != want {
		t.Errorf("EncodeInstruments() =\n%s\nwant\n%s", got, want)
	}

	decoded, err := DecodeInstruments(&b)
	if err != nil {
		t.Fatalf("DecodeInstruments() error = %v", err)
	}
	if diff := cmp.Diff(instruments, decoded); diff != "" {
		t.Errorf("DecodeInstruments() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeInstruments_Empty(t *testing.T) {
	data, err := MarshalInstruments(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "[\n]\n"; got != want {
		t.Errorf("MarshalInstruments(nil) = %q, want %q", got, want)
	}
	for _, input := range []string{"", "  \n", "null", "[]", string(data)} {
		got, err := UnmarshalInstruments([]byte(input))
		if err != nil {
			t.Errorf("UnmarshalInstruments(%q) error = %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("UnmarshalInstruments(%q) = %v, want empty", input, got)
		}
	}
}

func TestDecodeInstruments_Lenient(t *testing.T) {
	input := `[{"id":1700000000000,"name":"a","heldQuantity":"2,5","couponRate":3.5},
	{"id":"x","name":"b"}]`
	got, err := DecodeInstruments(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeInstruments() error = %v", err)
	}
	want := []Instrument{
		{ID: "1700000000000", Name: "a", Held: Q(2.5), Months: []Month{}, Coupon: "3.5"},
		{ID: "x", Name: "b", Months: []Month{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeInstruments() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeInstruments_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `[{`},
		{"not an array", `{"id":"a"}`},
		{"missing id", `[{"name":"a"}]`},
		{"duplicated id", `[{"id":"a"},{"id":"a"}]`},
		{"bad quantity", `[{"id":"a","heldQuantity":true}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeInstruments(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeInstruments(%s) succeeded", tt.input)
			}
		})
	}
}

func TestDraft_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Draft
	}{
		{
			input: `{"name":"a","heldQuantity":"10","payoutMonths":[1,7],"couponRate":"1,5"}`,
			want:  Draft{Name: "a", Held: "10", Months: []Month{1, 7}, Coupon: "1,5"},
		},
		{
			input: `{"name":"a","heldQuantity":10,"payoutMonths":[2],"couponRate":1.5}`,
			want:  Draft{Name: "a", Held: "10", Months: []Month{2}, Coupon: "1.5"},
		},
		{
			input: `{}`,
			want:  Draft{},
		},
	}
	for _, tt := range tests {
		var got Draft
		if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", tt.input, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Unmarshal(%s) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

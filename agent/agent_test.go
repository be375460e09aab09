package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/date"
	"github.com/etnz/bondbook/storage"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func testSession(t *testing.T) *bondbook.Session {
	t.Helper()
	st := storage.NewMemory()
	err := st.Save(context.Background(), []bondbook.Instrument{
		{ID: "1", Name: "OFZ 26238", Held: bondbook.Q(10), Months: []bondbook.Month{1, 7}, Coupon: "35,4"},
		{ID: "2", Name: "RZD", Held: bondbook.Q(5), Months: []bondbook.Month{3}, Coupon: "2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := bondbook.Open(context.Background(), st, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBookkeeperLibrary(t *testing.T) {
	session := testSession(t)
	lib := NewLibrary([]Function{IncomeReport(session, ""), Recommendations(session, ""), Instruments(session)})
	ctx := context.Background()

	tests := []struct {
		call       *genai.FunctionCall
		wantOutput string
		wantError  string
	}{
		{
			call:       &genai.FunctionCall{ID: "1", Name: "IncomeReport", Args: map[string]any{"date": "2025-02-01"}},
			wantOutput: "# Bond Income on 2025-02-01",
		},
		{
			call:       &genai.FunctionCall{ID: "2", Name: "Recommendations", Args: map[string]any{"date": "2025-02-01"}},
			wantOutput: "1. OFZ 26238, coupon 35,4",
		},
		{
			call:       &genai.FunctionCall{ID: "3", Name: "Instruments"},
			wantOutput: `"name":"RZD"`,
		},
		{
			call:      &genai.FunctionCall{ID: "4", Name: "IncomeReport", Args: map[string]any{"date": 12}},
			wantError: "is not a string",
		},
		{
			call:      &genai.FunctionCall{ID: "5", Name: "Unknown"},
			wantError: "unknown function Unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.call.Name, func(t *testing.T) {
			resp := lib(ctx, tt.call)
			if resp.ID != tt.call.ID || resp.Name != tt.call.Name {
				t.Errorf("response id/name = %q/%q, want %q/%q", resp.ID, resp.Name, tt.call.ID, tt.call.Name)
			}
			if tt.wantError != "" {
				msg, _ := resp.Response["error"].(string)
				if !strings.Contains(msg, tt.wantError) {
					t.Errorf("error = %q, want it to contain %q", msg, tt.wantError)
				}
				return
			}
			out, _ := resp.Response["output"].(string)
			if !strings.Contains(out, tt.wantOutput) {
				t.Errorf("output does not contain %q:\n%s", tt.wantOutput, out)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate(map[string]any{"date": "2025-7-1"})
	if err != nil || got != date.MustParse("2025-07-01") {
		t.Errorf("parseDate() = %v, %v", got, err)
	}
	if _, err := parseDate(map[string]any{"date": "yesterday"}); err == nil {
		t.Error("parseDate(yesterday) succeeded, want an error")
	}
	if got, err := parseDate(nil); err != nil || got != date.Today() {
		t.Errorf("parseDate(nil) = %v, %v, want today", got, err)
	}
}

func TestDeclarations(t *testing.T) {
	session := testSession(t)
	experts := []*Expert{NewBookkeeper(session, "RUB"), NewAnalyst()}
	decls := NewDeclaration(experts)
	if len(decls) != 2 || decls[0].Name != "Bookkeeper" || decls[1].Name != "Analyst" {
		t.Errorf("NewDeclaration() = %v", decls)
	}
	data, err := json.Marshal(decls[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"question"`) {
		t.Errorf("expert declaration has no question parameter: %s", data)
	}
}

func TestAgent_Print(t *testing.T) {
	var b bytes.Buffer
	a := New(&b, strings.NewReader(""))
	a.print("plain")
	a.Render = func(w io.Writer, md string) { w.Write([]byte("rendered " + md)) }
	a.print("md")
	if got := b.String(); got != "plain\nrendered md" {
		t.Errorf("print() wrote %q", got)
	}
}

func TestAgent_Next(t *testing.T) {
	var b bytes.Buffer
	a := New(&b, strings.NewReader("\n  how much in May?  \nbye\nnever read\n"))
	queued := []string{"", "first"}

	var got []string
	for {
		q, err := a.next(&queued)
		if errors.Is(err, errBye) {
			break
		}
		if err != nil {
			t.Fatalf("next() error = %v", err)
		}
		got = append(got, q)
	}
	want := []string{"first", "how much in May?"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("next() questions = %q, want %q", got, want)
	}
	if !strings.HasPrefix(b.String(), prompt) {
		t.Errorf("next() did not print the prompt: %q", b.String())
	}
}

func TestAgent_Next_EOF(t *testing.T) {
	a := New(io.Discard, strings.NewReader("last question"))
	var queued []string
	if q, err := a.next(&queued); err != nil || q != "last question" {
		t.Errorf("next() = %q, %v, want the unterminated line", q, err)
	}
	if _, err := a.next(&queued); !errors.Is(err, errBye) {
		t.Errorf("next() at end of input error = %v, want errBye", err)
	}
}

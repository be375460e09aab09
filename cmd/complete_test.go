package cmd

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("bbk", flag.ContinueOnError)
	global.String("store", "", "")
	global.Bool("v", false, "")

	c := Completion(global)

	if got, want := len(c.Sub), len(commands)+1; got != want {
		t.Errorf("len(Sub) = %d, want %d", got, want)
	}
	if got := c.Flags["v"].Predict(""); len(got) != 0 {
		t.Errorf("-v predicts %v, want nothing", got)
	}

	tests := []struct {
		cmd, flag string
		want      []string
	}{
		{"list", "month", []string{"january", "february", "march"}},
		{"import", "format", []string{"legacy", "slot"}},
		{"list", "json", nil},
	}
	for _, tt := range tests {
		t.Run(tt.cmd+"-"+tt.flag, func(t *testing.T) {
			sub, ok := c.Sub[tt.cmd]
			if !ok {
				t.Fatalf("no completion for %q", tt.cmd)
			}
			p, ok := sub.Flags[tt.flag]
			if !ok {
				t.Fatalf("no completion for -%s", tt.flag)
			}
			got := p.Predict("")
			if len(got) > len(tt.want) {
				got = got[:len(tt.want)]
			}
			if len(tt.want) == 0 && len(got) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Predict() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := c.Sub["rm"].Args.Predict(""); len(got) != 0 {
		t.Errorf("rm args = %v, want none", got)
	}
}

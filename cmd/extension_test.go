package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExtensionEnv(t *testing.T) {
	oldStore, oldCurrency, oldVerbose := *storeURL, *currency, *Verbose
	defer func() { *storeURL, *currency, *Verbose = oldStore, oldCurrency, oldVerbose }()

	*storeURL = "redis://localhost:6379/0"
	*currency = "XYZ"
	*Verbose = true

	env := extensionEnv()
	for _, want := range []string{
		"BBK_STORE=redis://localhost:6379/0",
		"BBK_CURRENCY=XYZ",
		"BBK_VERBOSE=true",
	} {
		found := false
		for _, e := range env {
			if e == want {
				found = true
			}
		}
		if !found {
			t.Errorf("extensionEnv() does not contain %q", want)
		}
	}

	// The global flags override the inherited environment.
	var c Config
	c.loadFromEnv(func(key string) string {
		value := ""
		for _, e := range env {
			if k, v, ok := strings.Cut(e, "="); ok && k == key {
				value = v
			}
		}
		return value
	})
	if c.Currency != "XYZ" {
		t.Errorf("extension reads currency %q, want XYZ", c.Currency)
	}
}

func TestExtensionCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script is a shell script")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"$BBK_CURRENCY $@\"\n"
	if err := os.WriteFile(filepath.Join(dir, "bbk-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	oldCurrency := *currency
	defer func() { *currency = oldCurrency }()
	*currency = "XYZ"

	cmd, err := extensionCommand("hello", []string{"world"})
	if err != nil {
		t.Fatalf("extensionCommand() error = %v", err)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := stdout.String(), "XYZ world\n"; got != want {
		t.Errorf("extension output = %q, want %q", got, want)
	}

	if _, err := extensionCommand("missing", nil); err == nil {
		t.Error("extensionCommand(missing) succeeded, want an error")
	}
}

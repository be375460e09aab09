package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation index is in sync with the files.
	// It checks two things:
	// 1. Every topic listed in readme.md can be successfully loaded by the bbk topic <topic_name> command.
	// 2. Every .md file (excluding readme.md itself) is present in the list of topics extracted from readme.md.

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		matches := topicRegex.FindStringSubmatch(scanner.Text())
		if len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), ".md")
		if base != "readme" && !slices.Contains(topicsInReadme, base) {
			t.Errorf("topic %q is not listed in readme.md", base)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(topicsInReadme)
	if !slices.Equal(all, topicsInReadme) {
		t.Errorf("GetAllTopics() = %v, want %v", all, topicsInReadme)
	}
}

// TestHeadings checks that every topic starts with a level 1 heading, used as
// its title.
func TestHeadings(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))
			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Fatalf("topic %q does not start with a level 1 heading", topic)
			}
			title, err := Title(topic)
			if err != nil {
				t.Fatal(err)
			}
			if got := string(h.Text(source)); got != title {
				t.Errorf("Title(%q) = %q, want %q", topic, title, got)
			}
		})
	}
}

func TestGetTopic_Star(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Income", "# Recommendations", "# Storage"} {
		if !strings.Contains(all, want) {
			t.Errorf("GetTopic(*) does not contain %q", want)
		}
	}
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) succeeded, want an error")
	}
}

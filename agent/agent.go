package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is a chat session between the user and a facilitator that can
// consult experts.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert

	// Welcome is printed once, when the session starts.
	Welcome string
	// Prompt is printed before each question.
	Prompt string
	// Render prints an answer, in markdown, to w. Plain text if nil.
	Render func(w io.Writer, markdown string)
}

// New returns an agent reading questions from r and writing answers to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
		Welcome:     welcome,
		Prompt:      prompt,
	}
}

// Start opens a chat for every expert and for the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range append(a.Experts, a.Facilitator) {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("cannot start %s: %w", e.Name, err)
		}
	}
	return nil
}

// errBye ends the session.
var errBye = errors.New("bye")

// next returns the next question: the first of queued, or a line read from
// the user. Empty questions are skipped.
func (a *Agent) next(queued *[]string) (string, error) {
	for {
		fmt.Fprint(a.w, a.Prompt)
		var input string
		if len(*queued) > 0 {
			input, *queued = (*queued)[0], (*queued)[1:]
			fmt.Fprintln(a.w, input)
		} else {
			line, err := a.r.ReadString('\n')
			if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
				return "", errBye
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			input = line
		}
		switch input = strings.TrimSpace(input); input {
		case "":
			continue
		case "bye", "exit", "quit":
			return "", errBye
		}
		return input, nil
	}
}

// Run answers questions until the user says bye or closes the input. The
// questions in queued are asked first.
func (a *Agent) Run(ctx context.Context, client *genai.Client, queued ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.w, a.Welcome)

	for {
		question, err := a.next(&queued)
		if errors.Is(err, errBye) {
			return nil
		}
		if err != nil {
			return err
		}
		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: question})
		if err != nil {
			return err
		}
		if len(content.Parts) == 0 {
			continue
		}
		a.print(content.Parts[0].Text)
	}
}

func (a *Agent) print(markdown string) {
	if a.Render != nil {
		a.Render(a.w, markdown)
		return
	}
	fmt.Fprintln(a.w, markdown)
}

package decide

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter collects answers from the operator.
//
// Implementations typically read lines from the controlling terminal; tests
// use scripted answers.
type Prompter interface {
	// Ask requests free text. An empty answer yields def.
	Ask(question, def string) (string, error)
	// Confirm requests a yes/no answer. An empty answer yields def.
	Confirm(question string, def bool) (bool, error)
}

// LinePrompter reads one line per question.
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter creates a prompter over in/out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), writer: out}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask implements Prompter.
func (p *LinePrompter) Ask(question, def string) (string, error) {
	if def != "" {
		_, _ = fmt.Fprintf(p.writer, "%s [%s]: ", question, def)
	} else {
		_, _ = fmt.Fprintf(p.writer, "%s: ", question)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm implements Prompter. Unrecognized answers are asked again.
func (p *LinePrompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		_, _ = fmt.Fprintf(p.writer, "%s [%s]: ", question, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		if answer == "" {
			return def, nil
		}
		if v, ok := ParseBool(answer); ok {
			return v, nil
		}
		_, _ = fmt.Fprintln(p.writer, "Please answer y or n.")
	}
}

package menu

import (
	"io"
	"strings"

	"github.com/peterh/liner"
)

// Prompter supplies one line of user input per call. io.EOF means the input
// is exhausted and the menu should exit.
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// TerminalPrompter reads from the controlling terminal with line editing and
// history. Ctrl-C and Ctrl-D both end the session.
type TerminalPrompter struct {
	state *liner.State
}

func NewTerminalPrompter() *TerminalPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &TerminalPrompter{state: state}
}

func (p *TerminalPrompter) Prompt(label string) (string, error) {
	line, err := p.state.Prompt(label)
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

func (p *TerminalPrompter) Close() error {
	return p.state.Close()
}

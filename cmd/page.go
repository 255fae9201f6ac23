package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/back1ash/IssueBell/internal/dashboard"
	"github.com/briandowns/spinner"
	"github.com/cli/go-gh/v2/pkg/prompter"
	"github.com/fatih/color"
)

// terminalPage is a Board that also reports progress on the terminal.
type terminalPage struct {
	*dashboard.Board
	errOut  io.Writer
	spinner *spinner.Spinner
}

func newTerminalPage(errOut io.Writer, interactive bool) *terminalPage {
	p := &terminalPage{
		Board:  dashboard.NewBoard(),
		errOut: errOut,
	}
	if interactive {
		p.spinner = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(errOut))
		p.spinner.Suffix = " " + dashboard.SubmitBusyText
	}
	return p
}

func (p *terminalPage) SetSubmitBusy(busy bool) {
	p.Board.SetSubmitBusy(busy)
	if p.spinner == nil {
		return
	}
	if busy {
		p.spinner.Start()
	} else {
		p.spinner.Stop()
	}
}

func (p *terminalPage) Alert(msg string) {
	p.Board.Alert(msg)
	color.New(color.FgRed).Fprintf(p.errOut, "✗ %s\n", msg)
}

// promptConfirmer asks yes/no questions on the controlling terminal.
type promptConfirmer struct {
	p *prompter.Prompter
}

func newPrompter() *prompter.Prompter {
	return prompter.New(os.Stdin, os.Stdout, os.Stderr)
}

func (c promptConfirmer) Confirm(prompt string) (bool, error) {
	ok, err := c.p.Confirm(prompt, false)
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}

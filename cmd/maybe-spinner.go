package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/minepkg/openlauncher/internals/commands"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
}

// Start might start the spinner
func (m *MaybeSpinner) Start(msg string) {
	m.Spinner.Suffix = " " + msg
	if m.Spin {
		m.Spinner.Start()
	} else if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	m.Spinner.Stop()
}

// Update will update the spinner text
func (m *MaybeSpinner) Update(t string) {
	m.Spinner.Suffix = " " + t

	if !m.Spin {
		fmt.Fprintln(os.Stderr, t)
	}
}

// NewMaybeSpinner returns a spinner that only spins if stdout is a terminal
func NewMaybeSpinner() *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    commands.IsTerminal(),
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(os.Stderr)),
	}
	s.Spinner.Prefix = " "
	return s
}

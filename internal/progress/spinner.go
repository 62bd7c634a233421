package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps a briandowns spinner that is a no-op off a terminal.
type Spinner struct {
	s       *spinner.Spinner
	w       io.Writer
	symbols ProgressSymbols
	enabled bool
}

// NewSpinner returns a spinner writing to w. It only animates when caps
// reports a TTY.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{w: w, symbols: symbols, enabled: caps.IsTTY}
	if sp.enabled {
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	}
	return sp
}

// Start shows message next to the spinner.
func (sp *Spinner) Start(message string) {
	if !sp.enabled {
		return
	}
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Stop ends the spinner and prints message with a success or failure symbol.
func (sp *Spinner) Stop(message string, ok bool) {
	if !sp.enabled {
		return
	}
	sp.s.Stop()
	symbol := sp.symbols.Checkmark
	if !ok {
		symbol = sp.symbols.Failure
	}
	fmt.Fprintf(sp.w, "%s %s\n", symbol, message)
}

// Run shows message while fn runs.
func (sp *Spinner) Run(message string, fn func() error) error {
	sp.Start(message)
	err := fn()
	sp.Stop(message, err == nil)
	return err
}

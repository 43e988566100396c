// Package view renders committed LED state transitions for observers.
package view

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/avolkov/ledsrv/internal/led"
)

// Sink consumes committed state transitions. Notify is called synchronously
// on the serve path, once per changed state, so implementations must not
// block indefinitely.
type Sink interface {
	Notify(led.State)
}

// Func adapts a function to the Sink interface.
type Func func(led.State)

func (f Func) Notify(state led.State) {
	f(state)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(led.State) {}

// Stdout dumps each committed state as one line, painting the color token in
// the LED's own color when the output terminal supports it.
type Stdout struct {
	out     io.Writer
	profile termenv.Profile
}

// NewStdout builds a stdout sink writing to w with w's detected color support.
func NewStdout(w io.Writer) *Stdout {
	return &Stdout{out: w, profile: termenv.NewOutput(w).Profile}
}

// Notify writes the state in the form `{ on, red, 3 }`.
func (v *Stdout) Notify(state led.State) {
	colorToken := v.profile.String(state.Color.String()).
		Foreground(v.profile.Color(ansiFor(state.Color))).
		String()

	fmt.Fprintf(v.out, "{ %s, %s, %d }\n", led.FormatActive(state.Active), colorToken, state.Rate)
}

// ansiFor maps an LED color onto its basic ANSI palette entry.
func ansiFor(color led.Color) string {
	switch color {
	case led.Green:
		return "2"
	case led.Blue:
		return "4"
	default:
		return "1"
	}
}

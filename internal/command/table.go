// Package command owns the LED command table and request dispatch.
package command

import (
	"strconv"

	"github.com/avolkov/ledsrv/internal/led"
)

// Handler executes one matched request. It receives the arguments after the
// verb and a working copy of the state record; it either rejects the argument
// value and leaves the copy alone, or mutates the copy and optionally returns
// output text for query-style verbs.
type Handler func(args []string, state *led.State) (output string, ok bool)

// Descriptor is one immutable entry of the dispatch table.
type Descriptor struct {
	Verb  string
	Arity int
	Run   Handler
}

// Table returns the static command table. Verbs match case-sensitively;
// argument values match case-insensitively.
func Table() []Descriptor {
	return []Descriptor{
		{
			Verb: "set-led-state", Arity: 1,
			Run: func(args []string, state *led.State) (string, bool) {
				active, err := led.ParseActive(args[0])
				if err != nil {
					return "", false
				}
				state.Active = active
				return "", true
			},
		},
		{
			Verb: "get-led-state", Arity: 0,
			Run: func(_ []string, state *led.State) (string, bool) {
				return led.FormatActive(state.Active), true
			},
		},
		{
			Verb: "set-led-color", Arity: 1,
			Run: func(args []string, state *led.State) (string, bool) {
				color, err := led.ParseColor(args[0])
				if err != nil {
					return "", false
				}
				state.Color = color
				return "", true
			},
		},
		{
			Verb: "get-led-color", Arity: 0,
			Run: func(_ []string, state *led.State) (string, bool) {
				return state.Color.String(), true
			},
		},
		{
			Verb: "set-led-rate", Arity: 1,
			Run: func(args []string, state *led.State) (string, bool) {
				rate, err := led.ParseRate(args[0])
				if err != nil {
					return "", false
				}
				state.Rate = rate
				return "", true
			},
		},
		{
			Verb: "get-led-rate", Arity: 0,
			Run: func(_ []string, state *led.State) (string, bool) {
				return strconv.Itoa(state.Rate), true
			},
		},
	}
}

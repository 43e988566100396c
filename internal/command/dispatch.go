package command

import (
	"log/slog"
	"strings"

	"github.com/avolkov/ledsrv/internal/led"
	"github.com/avolkov/ledsrv/internal/view"
)

// Wire response status tokens.
const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Dispatcher owns the authoritative state record and the command table.
// Handlers only ever see a working copy; a successful handler result is
// committed back when it actually changed the record, and the sink is
// notified once per committed change.
type Dispatcher struct {
	table  []Descriptor
	state  led.State
	sink   view.Sink
	logger *slog.Logger
}

// NewDispatcher builds a dispatcher over the default state record.
func NewDispatcher(sink view.Sink, logger *slog.Logger) *Dispatcher {
	if sink == nil {
		sink = view.Nop{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		table:  Table(),
		state:  led.Default(),
		sink:   sink,
		logger: logger,
	}
}

// State returns a copy of the committed state record.
func (d *Dispatcher) State() led.State {
	return d.state
}

// Dispatch parses and executes one request line, returning the handler's
// output and success flag.
func (d *Dispatcher) Dispatch(request string) (output string, ok bool) {
	tokens := strings.Fields(request)
	if len(tokens) == 0 {
		return "", false
	}

	verb := tokens[0]
	args := tokens[1:]

	for i := range d.table {
		desc := &d.table[i]
		if desc.Verb != verb || desc.Arity != len(args) {
			continue
		}

		working := d.state
		output, ok := desc.Run(args, &working)
		if ok && !working.Equal(d.state) {
			d.state = working
			d.sink.Notify(working)
			d.logger.Info("state committed",
				"active", working.Active,
				"color", working.Color.String(),
				"rate", working.Rate,
			)
		}
		return output, ok
	}

	d.logger.Warn("unmatched request", "verb", verb, "nargs", len(args))
	return "", false
}

// Respond formats the wire response line for one dispatched request.
func Respond(output string, ok bool) string {
	if !ok {
		return StatusFailed + "\n"
	}
	if output == "" {
		return StatusOK + "\n"
	}
	return StatusOK + " " + output + "\n"
}

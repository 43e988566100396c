// Package cli parses ledsrv command words and flags.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

type Command string

const (
	CommandServe   Command = "serve"
	CommandOn      Command = "on"
	CommandOff     Command = "off"
	CommandState   Command = "state"
	CommandColor   Command = "color"
	CommandRate    Command = "rate"
	CommandBatch   Command = "batch"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

// argBounds is the accepted positional argument count range per command.
type argBounds struct {
	min int
	max int
}

var validCommands = map[Command]argBounds{
	CommandServe:   {},
	CommandOn:      {},
	CommandOff:     {},
	CommandState:   {},
	CommandColor:   {min: 0, max: 1}, // bare reads, one arg sets
	CommandRate:    {min: 0, max: 1},
	CommandBatch:   {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

type Parsed struct {
	Command    Command
	Args       []string
	ConfigPath string
	Dir        string
	ShowHelp   bool
}

// Parse interprets argv into a command word, its arguments, and flags.
func Parse(args []string) (Parsed, error) {
	flags := pflag.NewFlagSet("ledsrv", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	configPath := flags.String("config", "", "config file path")
	dir := flags.String("dir", "", "channel directory override")
	showVersion := flags.Bool("version", false, "print version")
	showHelp := flags.BoolP("help", "h", false, "show help")

	if err := flags.Parse(args); err != nil {
		return Parsed{}, err
	}

	parsed := Parsed{
		Command:    CommandHelp,
		ConfigPath: *configPath,
		Dir:        *dir,
		ShowHelp:   true,
	}

	if *showHelp {
		return parsed, nil
	}
	if *showVersion {
		parsed.Command = CommandVersion
		parsed.ShowHelp = false
		return parsed, nil
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return parsed, nil
	}

	cmd := Command(rest[0])
	bounds, ok := validCommands[cmd]
	if !ok {
		return Parsed{}, fmt.Errorf("unknown command: %s", rest[0])
	}

	cmdArgs := rest[1:]
	if len(cmdArgs) < bounds.min || len(cmdArgs) > bounds.max {
		return Parsed{}, fmt.Errorf("command %q takes at most %d argument(s), got %d", cmd, bounds.max, len(cmdArgs))
	}

	parsed.Command = cmd
	parsed.Args = cmdArgs
	parsed.ShowHelp = cmd == CommandHelp
	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--dir PATH] <command>

Commands:
  serve            Run the LED control daemon
  on               Turn the LED on
  off              Turn the LED off
  state            Print the on/off state
  color [COLOR]    Print the color, or set it to red, green, or blue
  rate [1-5]       Print the blink rate, or set it
  batch            Read request lines from stdin, send them as one batch
  doctor           Run configuration and environment checks
  version          Print version information
  help             Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/ledsrv/config.jsonc)
  --dir PATH      Directory for named channels (default from config, /tmp)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}

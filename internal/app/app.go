// Package app routes parsed CLI commands to the daemon and client surfaces.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/avolkov/ledsrv/internal/cli"
	"github.com/avolkov/ledsrv/internal/client"
	"github.com/avolkov/ledsrv/internal/command"
	"github.com/avolkov/ledsrv/internal/config"
	"github.com/avolkov/ledsrv/internal/doctor"
	"github.com/avolkov/ledsrv/internal/logging"
	"github.com/avolkov/ledsrv/internal/server"
	"github.com/avolkov/ledsrv/internal/version"
	"github.com/avolkov/ledsrv/internal/view"
)

type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("ledsrv"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("ledsrv"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
	}

	dir := cfgLoaded.Config.Channels.Dir
	if strings.TrimSpace(parsed.Dir) != "" {
		dir = parsed.Dir
	}

	logger := r.Logger
	if logger == nil {
		logRuntime, err := logging.New(cfgLoaded.Config.Log.Level)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
			return 1
		}
		defer func() { _ = logRuntime.Close() }()
		logger = logRuntime.Logger
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"dir", dir,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded, dir)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandServe:
		return r.commandServe(ctx, cfgLoaded.Config, dir, logger)
	case cli.CommandBatch:
		return r.commandBatch(dir)
	default:
		return r.commandRequest(parsed, dir)
	}
}

// commandServe runs the daemon until the context is cancelled.
func (r Runner) commandServe(ctx context.Context, cfg config.Config, dir string, logger *slog.Logger) int {
	var sink view.Sink = view.Nop{}
	if cfg.View.Backend == config.ViewStdout {
		sink = view.NewStdout(r.Stdout)
	}

	dispatcher := command.NewDispatcher(sink, logger)
	// Show the startup state before any client connects.
	sink.Notify(dispatcher.State())

	if err := server.New(dir, dispatcher, logger).Run(ctx); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("serve failed", "error", err.Error())
		return 1
	}
	return 0
}

// commandRequest maps one CLI command onto its wire request and prints the
// decoded response.
func (r Runner) commandRequest(parsed cli.Parsed, dir string) int {
	var request string
	switch parsed.Command {
	case cli.CommandOn:
		request = "set-led-state on"
	case cli.CommandOff:
		request = "set-led-state off"
	case cli.CommandState:
		request = "get-led-state"
	case cli.CommandColor:
		if len(parsed.Args) == 0 {
			request = "get-led-color"
		} else {
			request = "set-led-color " + parsed.Args[0]
		}
	case cli.CommandRate:
		if len(parsed.Args) == 0 {
			request = "get-led-rate"
		} else {
			request = "set-led-rate " + parsed.Args[0]
		}
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}

	responses, code := r.exchange(dir, []string{request})
	if code != 0 {
		return code
	}

	response := responses[0]
	if response == command.StatusFailed {
		fmt.Fprintln(r.Stderr, "error: request failed")
		return 1
	}
	if output, found := strings.CutPrefix(response, command.StatusOK+" "); found {
		fmt.Fprintln(r.Stdout, output)
	}
	return 0
}

// commandBatch forwards stdin request lines as a single batch and prints the
// raw wire responses.
func (r Runner) commandBatch(dir string) int {
	var requests []string
	scanner := bufio.NewScanner(r.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		requests = append(requests, line)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(r.Stderr, "error: read stdin: %v\n", err)
		return 1
	}
	if len(requests) == 0 {
		fmt.Fprintln(r.Stderr, "error: no requests on stdin")
		return 2
	}

	responses, code := r.exchange(dir, requests)
	if code != 0 {
		return code
	}
	for _, response := range responses {
		fmt.Fprintln(r.Stdout, response)
	}
	return 0
}

// exchange runs one client session against the daemon.
func (r Runner) exchange(dir string, requests []string) ([]string, int) {
	session, err := client.Connect(dir, os.Getpid())
	if err != nil {
		if errors.Is(err, client.ErrNotRunning) {
			fmt.Fprintln(r.Stderr, "error: no ledsrv daemon is listening; start one with `ledsrv serve`")
			return nil, 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return nil, 1
	}
	defer func() { _ = session.Close() }()

	responses, err := session.Exchange(requests)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return nil, 1
	}
	return responses, 0
}

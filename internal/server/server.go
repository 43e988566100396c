// Package server implements the rendezvous listener that accepts client
// identities and services one request batch per client.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/avolkov/ledsrv/internal/command"
	"github.com/avolkov/ledsrv/internal/fifo"
)

// Server owns the rendezvous channel and the dispatcher for its lifetime.
type Server struct {
	dir        string
	dispatcher *command.Dispatcher
	logger     *slog.Logger
}

// New builds a server that creates its channels under dir.
func New(dir string, dispatcher *command.Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{dir: dir, dispatcher: dispatcher, logger: logger}
}

// Run creates the rendezvous channel (replacing any stale artifact from a
// crashed prior run) and services clients strictly sequentially until the
// context is cancelled or the rendezvous channel fails. The named artifact
// is removed on every return path.
func (s *Server) Run(ctx context.Context) error {
	rendezvous, err := fifo.Create(fifo.RendezvousPath(s.dir), fifo.ReadWriteEnd)
	if err != nil {
		return fmt.Errorf("create rendezvous channel: %w", err)
	}
	defer func() { _ = rendezvous.Close() }()

	// The server holds both ends, so a write here wakes the blocked read
	// below and lets the loop observe cancellation.
	wakeupDone := make(chan struct{})
	defer close(wakeupDone)
	go func() {
		select {
		case <-ctx.Done():
			_, _ = rendezvous.Write([]byte("\n"))
		case <-wakeupDone:
		}
	}()

	s.logger.Info("listening", "rendezvous", rendezvous.Path())

	for {
		identities, err := ReadBatch(rendezvous)
		if err != nil {
			return fmt.Errorf("read rendezvous channel: %w", err)
		}
		if ctx.Err() != nil {
			s.logger.Info("shutting down", "reason", ctx.Err().Error())
			return nil
		}

		for _, identity := range identities {
			pid, err := strconv.Atoi(identity)
			if err != nil {
				s.logger.Warn("malformed client identity", "identity", identity)
				continue
			}
			if err := s.serveClient(pid); err != nil {
				s.logger.Error("client session failed", "pid", pid, "error", err.Error())
			}
		}
	}
}

// serveClient opens the per-client link, services exactly one request batch,
// and tears the link down. A failure here is isolated to this client.
func (s *Server) serveClient(pid int) error {
	link, err := fifo.OpenDuplex(s.dir, pid)
	if err != nil {
		return err
	}
	defer func() { _ = link.Close() }()

	requests, err := ReadBatch(link.In)
	if err != nil {
		return err
	}

	for _, request := range requests {
		output, ok := s.dispatcher.Dispatch(request)
		s.logger.Info("request served", "pid", pid, "request", request, "ok", ok)

		if _, err := link.Out.Write([]byte(command.Respond(output, ok))); err != nil {
			return err
		}
	}

	return nil
}

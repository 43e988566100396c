// Package client implements the peer side of the rendezvous protocol.
package client

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/avolkov/ledsrv/internal/fifo"
)

// ErrNotRunning reports that no daemon holds the rendezvous channel.
var ErrNotRunning = errors.New("no ledsrv daemon is listening")

// Probe reports whether a daemon currently listens on the rendezvous channel
// under dir.
func Probe(dir string) (bool, error) {
	return fifo.HasReader(fifo.RendezvousPath(dir))
}

// Session is one connected duplex exchange with the daemon. The session owns
// its two named channels and removes them on Close.
type Session struct {
	requests  *fifo.Channel // write end of the client→server channel
	responses *fifo.Channel // read end of the server→client channel
}

// Connect creates this client's channel pair, announces pid on the
// rendezvous channel, and opens both ends. The opens block until the daemon
// picks this identity out of its rendezvous batch.
func Connect(dir string, pid int) (*Session, error) {
	alive, err := Probe(dir)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, ErrNotRunning
	}

	inPath := fifo.InboundPath(dir, pid)
	outPath := fifo.OutboundPath(dir, pid)

	if err := fifo.Make(inPath); err != nil {
		return nil, err
	}
	if err := fifo.Make(outPath); err != nil {
		_ = fifo.Remove(inPath)
		return nil, err
	}

	if err := announce(dir, pid); err != nil {
		_ = fifo.Remove(inPath)
		_ = fifo.Remove(outPath)
		return nil, err
	}

	requests, err := fifo.Open(inPath, fifo.WriteEnd, true)
	if err != nil {
		_ = fifo.Remove(inPath)
		_ = fifo.Remove(outPath)
		return nil, err
	}

	responses, err := fifo.Open(outPath, fifo.ReadEnd, true)
	if err != nil {
		_ = requests.Close()
		_ = fifo.Remove(outPath)
		return nil, err
	}

	return &Session{requests: requests, responses: responses}, nil
}

// announce writes the decimal pid line to the rendezvous channel.
func announce(dir string, pid int) error {
	rendezvous, err := fifo.Open(fifo.RendezvousPath(dir), fifo.WriteEnd, false)
	if err != nil {
		return fmt.Errorf("announce to daemon: %w", err)
	}
	defer func() { _ = rendezvous.Close() }()

	if _, err := rendezvous.Write([]byte(strconv.Itoa(pid) + "\n")); err != nil {
		return fmt.Errorf("announce to daemon: %w", err)
	}
	return nil
}

// Exchange sends all requests as one newline-delimited batch in a single
// write and collects one response line per request. Responses may arrive
// coalesced or split across physical reads.
func (s *Session) Exchange(requests []string) ([]string, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	batch := strings.Join(requests, "\n") + "\n"
	if _, err := s.requests.Write([]byte(batch)); err != nil {
		return nil, err
	}

	var accum bytes.Buffer
	buf := make([]byte, 4096)
	for lineCount(accum.Bytes()) < len(requests) {
		n, err := s.responses.Read(buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, errors.New("daemon closed link before responding")
		}
		accum.Write(buf[:n])
	}

	lines := strings.Split(strings.TrimSuffix(accum.String(), "\n"), "\n")
	return lines, nil
}

// Close releases and removes the client-owned channels.
func (s *Session) Close() error {
	err := s.requests.Close()
	if respErr := s.responses.Close(); respErr != nil && err == nil {
		err = respErr
	}
	return err
}

// lineCount counts completed newline-terminated lines in buf.
func lineCount(buf []byte) int {
	return bytes.Count(buf, []byte("\n"))
}

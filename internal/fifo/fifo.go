// Package fifo wraps named-pipe endpoints with scoped create/open/close
// lifecycle and per-client channel naming.
package fifo

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Direction selects which end of a channel the caller holds.
type Direction int

const (
	// ReadEnd opens the channel for reading; blocks until a writer appears.
	ReadEnd Direction = iota
	// WriteEnd opens the channel for writing; blocks until a reader appears.
	WriteEnd
	// ReadWriteEnd opens both ends at once so the holder never observes
	// writer-EOF. Used for the rendezvous channel only.
	ReadWriteEnd
)

const createMode = 0o644

// Channel is one named unidirectional byte-stream endpoint backed by a FIFO.
type Channel struct {
	path          string
	fd            int
	deleteOnClose bool
	closed        bool
}

// Create removes any stale named object at path, makes a fresh FIFO, and
// opens it. The returned channel removes the FIFO again on Close.
func Create(path string, dir Direction) (*Channel, error) {
	if err := Make(path); err != nil {
		return nil, err
	}

	ch, err := Open(path, dir, true)
	if err != nil {
		_ = Remove(path)
		return nil, err
	}
	return ch, nil
}

// Make removes any stale named object at path and creates a fresh FIFO
// without opening it. Callers open it later, once the peer is expected.
func Make(path string) error {
	if err := Remove(path); err != nil {
		return err
	}
	if err := unix.Mkfifo(path, createMode); err != nil {
		return fmt.Errorf("mkfifo %s: %w", path, err)
	}
	return nil
}

// HasReader reports whether some process currently holds the read end of the
// FIFO at path, without blocking. A missing object counts as no reader.
func HasReader(path string) (bool, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err == nil {
		_ = unix.Close(fd)
		return true, nil
	}
	if errors.Is(err, unix.ENXIO) || errors.Is(err, unix.ENOENT) {
		return false, nil
	}
	return false, fmt.Errorf("probe %s: %w", path, err)
}

// Open opens a pre-existing FIFO at path, blocking until the peer end is
// opened. With deleteOnClose the named object is removed when the channel
// is closed.
func Open(path string, dir Direction, deleteOnClose bool) (*Channel, error) {
	var flags int
	switch dir {
	case ReadEnd:
		flags = unix.O_RDONLY
	case WriteEnd:
		flags = unix.O_WRONLY
	case ReadWriteEnd:
		flags = unix.O_RDWR
	default:
		return nil, fmt.Errorf("unknown direction %d", dir)
	}

	fd, err := unix.Open(path, flags, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &Channel{path: path, fd: fd, deleteOnClose: deleteOnClose}, nil
}

// Path returns the filesystem name of the underlying object.
func (c *Channel) Path() string {
	return c.path
}

// Read performs one blocking read into buf.
func (c *Channel) Read(buf []byte) (int, error) {
	n, err := unix.Read(c.fd, buf)
	if err != nil {
		return n, fmt.Errorf("read %s: %w", c.path, err)
	}
	return n, nil
}

// Write performs one blocking write of buf.
func (c *Channel) Write(buf []byte) (int, error) {
	n, err := unix.Write(c.fd, buf)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", c.path, err)
	}
	return n, nil
}

// Close releases the descriptor and, when the channel owns the named object,
// removes it. Safe to call more than once.
func (c *Channel) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	err := unix.Close(c.fd)
	if c.deleteOnClose {
		if removeErr := Remove(c.path); removeErr != nil && err == nil {
			err = removeErr
		}
	}
	if err != nil {
		return fmt.Errorf("close %s: %w", c.path, err)
	}
	return nil
}

// Remove deletes the named object at path, tolerating its absence.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

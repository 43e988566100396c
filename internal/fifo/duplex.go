package fifo

import "fmt"

// Duplex pairs the two per-client channels for one session. The channels are
// owned exclusively by the link; the named objects themselves belong to the
// client and are not removed on close.
type Duplex struct {
	In  *Channel // client→server requests
	Out *Channel // server→client responses
}

// OpenDuplex derives both channel names from the client identity and opens
// the inbound end for reading, then the outbound end for writing. Both opens
// block until the client opens its matching ends; either open failing (for
// example ENOENT when the client never created its side) fails the link.
func OpenDuplex(dir string, pid int) (*Duplex, error) {
	in, err := Open(InboundPath(dir, pid), ReadEnd, false)
	if err != nil {
		return nil, fmt.Errorf("open link for client %d: %w", pid, err)
	}

	out, err := Open(OutboundPath(dir, pid), WriteEnd, false)
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("open link for client %d: %w", pid, err)
	}

	return &Duplex{In: in, Out: out}, nil
}

// Close releases both channels, keeping the first error.
func (d *Duplex) Close() error {
	err := d.In.Close()
	if outErr := d.Out.Close(); outErr != nil && err == nil {
		err = outErr
	}
	return err
}

package server

import "strings"

// maxBatch bounds one physical read. POSIX guarantees PIPE_BUF is at least
// 512 bytes and Linux uses 4096; a client that keeps one batch within this
// bound gets an atomic write, so a batch never splits across reads.
const maxBatch = 4096

// readable is the one-shot blocking read surface of a channel.
type readable interface {
	Read(buf []byte) (int, error)
}

// ReadBatch performs one blocking read and splits the bytes read into
// newline-delimited entries. Consecutive delimiters are compressed and a
// trailing newline produces no empty entry. A request split across two
// physical reads is not reassembled.
func ReadBatch(ch readable) ([]string, error) {
	buf := make([]byte, maxBatch)
	n, err := ch.Read(buf)
	if err != nil {
		return nil, err
	}
	return splitBatch(string(buf[:n])), nil
}

// splitBatch splits raw batch text on newlines, dropping empty entries.
func splitBatch(raw string) []string {
	parts := strings.Split(raw, "\n")
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		entries = append(entries, part)
	}
	return entries
}

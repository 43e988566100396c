package fifo

import (
	"fmt"
	"path/filepath"
)

// Channel name templates shared by server and clients. The names are a wire
// contract: any compliant client must derive the same paths.
const (
	rendezvousName  = "ledsrv"
	inboundPattern  = "ledsrv.in.%d"
	outboundPattern = "ledsrv.out.%d"
)

// RendezvousPath returns the well-known rendezvous channel path under dir.
func RendezvousPath(dir string) string {
	return filepath.Join(dir, rendezvousName)
}

// InboundPath returns the client→server channel path for one client identity.
func InboundPath(dir string, pid int) string {
	return filepath.Join(dir, fmt.Sprintf(inboundPattern, pid))
}

// OutboundPath returns the server→client channel path for one client identity.
func OutboundPath(dir string, pid int) string {
	return filepath.Join(dir, fmt.Sprintf(outboundPattern, pid))
}

// Package doctor runs runtime readiness diagnostics for config, channels, and daemon state.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avolkov/ledsrv/internal/client"
	"github.com/avolkov/ledsrv/internal/config"
	"github.com/avolkov/ledsrv/internal/fifo"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config checks for a loaded config and channel dir.
func Run(cfg config.Loaded, dir string) Report {
	checks := []Check{{
		Name:    "config",
		Pass:    true,
		Message: fmt.Sprintf("loaded %q", cfg.Path),
	}}

	checks = append(checks, checkChannelDir(dir))
	checks = append(checks, checkMkfifo(dir))
	checks = append(checks, checkDaemon(dir))

	return Report{Checks: checks}
}

// checkChannelDir validates that the channel directory exists and is a directory.
func checkChannelDir(dir string) Check {
	info, err := os.Stat(dir)
	if err != nil {
		return Check{Name: "channels.dir", Pass: false, Message: err.Error()}
	}
	if !info.IsDir() {
		return Check{Name: "channels.dir", Pass: false, Message: fmt.Sprintf("%s is not a directory", dir)}
	}
	return Check{Name: "channels.dir", Pass: true, Message: fmt.Sprintf("%s exists", dir)}
}

// checkMkfifo validates that named objects can be created in the channel dir.
func checkMkfifo(dir string) Check {
	probe := filepath.Join(dir, fmt.Sprintf(".ledsrv-doctor.%d", os.Getpid()))
	if err := fifo.Make(probe); err != nil {
		return Check{Name: "mkfifo", Pass: false, Message: err.Error()}
	}
	_ = fifo.Remove(probe)
	return Check{Name: "mkfifo", Pass: true, Message: fmt.Sprintf("named channels can be created in %s", dir)}
}

// checkDaemon reports daemon liveness and flags a stale rendezvous artifact
// left behind by a crashed run.
func checkDaemon(dir string) Check {
	path := fifo.RendezvousPath(dir)

	alive, err := client.Probe(dir)
	if err != nil {
		return Check{Name: "daemon", Pass: false, Message: err.Error()}
	}
	if alive {
		return Check{Name: "daemon", Pass: true, Message: fmt.Sprintf("listening on %s", path)}
	}

	if _, statErr := os.Stat(path); statErr == nil {
		return Check{Name: "daemon", Pass: false, Message: fmt.Sprintf("stale rendezvous artifact at %s; no daemon is reading it", path)}
	}

	return Check{Name: "daemon", Pass: true, Message: "not running"}
}

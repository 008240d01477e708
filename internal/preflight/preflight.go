package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"nvimcmd/internal/editor"
	"nvimcmd/internal/events"
)

const pingTimeout = 5 * time.Second

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Target is the resolved editor address, or the error resolving it.
type Target struct {
	Address   string
	Source    string
	LookupErr error
}

// Pinger is the part of a session the editor check uses.
type Pinger interface {
	CurrentBuffer(ctx context.Context) (events.BufferID, error)
	Close() error
}

// DialFunc opens a session to address.
type DialFunc func(ctx context.Context, address string) (Pinger, error)

// RunAll executes the checks for target in order, stopping after the first
// failure.
func RunAll(ctx context.Context, target Target, dial DialFunc) []Result {
	results := []Result{CheckAddress(target)}
	if !results[0].Passed {
		return results
	}

	addr, err := editor.ParseAddress(target.Address)
	if err != nil {
		return append(results, Result{Name: "Address format", Detail: err.Error()})
	}

	socket := CheckSocket(addr)
	results = append(results, socket)
	if !socket.Passed {
		return results
	}

	return append(results, CheckEditor(ctx, target.Address, dial))
}

// CheckAddress passes when an address was resolved.
func CheckAddress(target Target) Result {
	const name = "Editor address"
	if target.LookupErr != nil {
		return Result{Name: name, Detail: target.LookupErr.Error()}
	}
	if target.Address == "" {
		return Result{Name: name, Detail: "no address"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (from %s)", target.Address, target.Source)}
}

// CheckSocket verifies a unix socket exists and is writable. TCP addresses
// pass without inspection.
func CheckSocket(addr editor.Address) Result {
	const name = "Socket"
	if addr.Network != "unix" {
		return Result{Name: name, Passed: true, Detail: "tcp address, not inspected"}
	}

	info, err := os.Stat(addr.Location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: "not found; is the editor still running?"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if info.Mode()&fs.ModeSocket == 0 {
		return Result{Name: name, Detail: "not a socket"}
	}
	if err := unix.Access(addr.Location, unix.W_OK); err != nil {
		return Result{Name: name, Detail: "not writable"}
	}
	return Result{Name: name, Passed: true, Detail: addr.Location}
}

// CheckEditor dials address and issues one call.
func CheckEditor(ctx context.Context, address string, dial DialFunc) Result {
	const name = "Editor RPC"

	checkCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	session, err := dial(checkCtx, address)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer session.Close()

	buffer, err := session.CurrentBuffer(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("responding (current buffer %d)", buffer)}
}

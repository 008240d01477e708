package editor

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	networkUnix = "unix"
	networkTCP  = "tcp"
)

// Address locates the editor's RPC socket.
type Address struct {
	Network  string
	Location string
}

func (a Address) String() string {
	if a.Network == networkTCP {
		return "tcp://" + a.Location
	}
	return a.Location
}

// ParseAddress interprets raw as a unix socket path or a host:port pair.
// Values containing a path separator or no colon are socket paths.
func ParseAddress(raw string) (Address, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Address{}, &ConnectionError{Message: "address is empty"}
	}
	if strings.ContainsAny(trimmed, `/\`) || !strings.Contains(trimmed, ":") {
		return Address{Network: networkUnix, Location: trimmed}, nil
	}
	host, port, err := net.SplitHostPort(trimmed)
	if err != nil {
		return Address{}, &ConnectionError{Address: trimmed, Message: "malformed address", Cause: err}
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return Address{}, &ConnectionError{Address: trimmed, Message: "malformed address: invalid port " + strconv.Quote(port)}
	}
	if host == "" {
		host = "127.0.0.1"
	}
	return Address{Network: networkTCP, Location: net.JoinHostPort(host, port)}, nil
}

// LookupAddress returns the value of the first variable in names that is set
// and non-empty, together with the variable's name.
func LookupAddress(names []string, lookup func(string) (string, bool)) (string, string, error) {
	for _, name := range names {
		if value, ok := lookup(name); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), name, nil
		}
	}
	return "", "", &EnvironmentError{Variables: append([]string(nil), names...)}
}

// checkSocket reports a missing or unwritable unix socket before dialing.
func checkSocket(addr Address) error {
	if addr.Network != networkUnix {
		return nil
	}
	if err := unix.Access(addr.Location, unix.W_OK); err != nil {
		return wrapDialError(addr, err)
	}
	return nil
}

func wrapDialError(addr Address, err error) error {
	switch {
	case errors.Is(err, syscall.ENOENT):
		return &ConnectionError{Address: addr.String(), Message: "socket not found; is the editor still running?", Cause: err}
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return &ConnectionError{Address: addr.String(), Message: "permission denied", Cause: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &ConnectionError{Address: addr.String(), Message: "connection refused; verify the editor is listening", Cause: err}
	default:
		return &ConnectionError{Address: addr.String(), Message: "dial failed", Cause: err}
	}
}

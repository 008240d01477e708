package editor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionClosed is wrapped by RPCError when a call is made on a session
	// whose dispatch loop has stopped.
	ErrSessionClosed = errors.New("editor session closed")

	errAttachRefused = errors.New("editor refused to attach buffer")
	errDetachRefused = errors.New("editor refused to detach buffer")
)

// EnvironmentError reports that none of the address variables is set.
type EnvironmentError struct {
	Variables []string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("editor address not found: none of %s is set; run from inside a neovim terminal or pass --address",
		strings.Join(e.Variables, ", "))
}

// ConnectionError reports that the transport could not be established.
type ConnectionError struct {
	Address string
	Message string
	Cause   error
}

func (e *ConnectionError) Error() string {
	prefix := "connect to editor"
	if e.Address != "" {
		prefix = fmt.Sprintf("connect to editor at %s", e.Address)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// RPCError reports a failed synchronous call.
type RPCError struct {
	Op  string
	Err error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *RPCError) Unwrap() error {
	return e.Err
}

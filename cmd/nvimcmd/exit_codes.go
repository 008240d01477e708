package main

import (
	"context"
	"errors"

	"nvimcmd/internal/driver"
	"nvimcmd/internal/editor"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitEnvironment = 3
	exitConnection  = 4
	exitRPC         = 5
	exitTimeout     = 6
	exitInterrupted = 130
)

func exitCode(err error) int {
	var (
		envErr  *editor.EnvironmentError
		connErr *editor.ConnectionError
		rpcErr  *editor.RPCError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &envErr):
		return exitEnvironment
	case errors.As(err, &connErr), errors.Is(err, driver.ErrEditorGone):
		return exitConnection
	case errors.Is(err, driver.ErrWaitTimeout):
		return exitTimeout
	case errors.As(err, &rpcErr):
		return exitRPC
	default:
		return exitFailure
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"nvimcmd/internal/driver"
	"nvimcmd/internal/editor"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: exitOK},
		{name: "generic", err: errors.New("boom"), want: exitFailure},
		{name: "environment", err: &editor.EnvironmentError{Variables: []string{"NVIM"}}, want: exitEnvironment},
		{name: "connection", err: &editor.ConnectionError{Message: "refused"}, want: exitConnection},
		{name: "editor gone", err: driver.ErrEditorGone, want: exitConnection},
		{name: "rpc", err: &editor.RPCError{Op: "nvim_command", Err: errors.New("E492")}, want: exitRPC},
		{name: "timeout", err: fmt.Errorf("%w after 1s", driver.ErrWaitTimeout), want: exitTimeout},
		{name: "interrupted", err: context.Canceled, want: exitInterrupted},
		{name: "rpc interrupted", err: &editor.RPCError{Op: "nvim_buf_attach", Err: context.Canceled}, want: exitInterrupted},
		{name: "rpc deadline", err: &editor.RPCError{Op: "nvim_command", Err: context.DeadlineExceeded}, want: exitRPC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

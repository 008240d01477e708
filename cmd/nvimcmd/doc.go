// Package main hosts the nvimcmd CLI entrypoint and command graph.
//
// Each subcommand resolves the editor address (flag, config, then the
// environment variables a neovim terminal exports), dials the editor's RPC
// socket, and hands one command to the driver. `edit --wait` keeps the
// process alive until the opened buffer is closed, which makes nvimcmd usable
// as $EDITOR inside a neovim terminal.
//
// Errors are mapped to distinct exit codes in exit_codes.go.
package main

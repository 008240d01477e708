// Package editor owns the msgpack-RPC session with a running Neovim instance.
//
// Dial parses and checks the socket address, connects, and starts the
// goroutine that reads the transport. That goroutine must run for synchronous
// calls to complete, so it starts immediately; notifications it receives are
// dropped until StartDispatch installs a handler. Synchronous calls such as
// Command and AttachBuffer may be issued from any goroutine and never block
// notification delivery. Close stops the loop and waits for it to exit.
//
// Failures are reported as *EnvironmentError (no address), *ConnectionError
// (address malformed or unreachable), and *RPCError (a call failed remotely,
// on the transport, or by context expiry).
package editor

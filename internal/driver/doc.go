// Package driver sequences editor commands.
//
// A Driver either sends a command and returns (Run) or sends it, subscribes
// to the buffer the command leaves current, and blocks until the editor
// reports that buffer detached (RunAndWait). Notifications reach the waiting
// goroutine through an events.Bridge fed by the session's dispatch loop, so a
// detach that races the attach reply is still observed.
package driver

// Package events turns editor RPC notifications into domain events and carries
// them from the session's dispatch goroutine to the foreground caller.
//
// Classify is a pure function from a notification name and its arguments to
// an optional Event. It never fails: unknown or malformed notifications are
// reported through a Disposition instead of an error so the dispatch loop can
// keep running. Router binds Classify to a Bridge, an unbounded ordered queue
// with a single producer and a single consumer.
package events

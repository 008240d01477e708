// Package preflight checks whether the editor this process would talk to is
// reachable.
//
// The checks run in order and stop at the first failure: the address must
// resolve, a unix socket must exist and be writable, and the editor must
// answer a call. The CLI "status" command renders the results.
package preflight

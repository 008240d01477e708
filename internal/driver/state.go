package driver

import "fmt"

// State is the driver's position in the command protocol.
type State int

const (
	StateIdle State = iota
	StateCommandSent
	StateResourceAttached
	StateWaitingForTerminalEvent
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCommandSent:
		return "command_sent"
	case StateResourceAttached:
		return "resource_attached"
	case StateWaitingForTerminalEvent:
		return "waiting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

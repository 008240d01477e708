package events

import "fmt"

// BufferID identifies an editor buffer.
type BufferID int64

// Kind enumerates the domain events the client acts on.
type Kind int

const (
	// KindDelete means the subscribed buffer was detached or removed on the
	// editor side.
	KindDelete Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a classified notification. Buffer is only meaningful when
// HasBuffer is true.
type Event struct {
	Kind      Kind
	Buffer    BufferID
	HasBuffer bool
}

// Concerns reports whether the event applies to buffer. Events without a
// buffer identifier apply to every buffer.
func (e Event) Concerns(buffer BufferID) bool {
	return !e.HasBuffer || e.Buffer == buffer
}

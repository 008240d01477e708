package events

import "math"

// Notification names emitted by the editor for attached buffers.
const (
	NotificationBufferDetach      = "nvim_buf_detach_event"
	NotificationBufferChangedTick = "nvim_buf_changedtick_event"
	NotificationBufferLines       = "nvim_buf_lines_event"
)

// SubscribedNotifications lists every notification name the session forwards
// to the router.
var SubscribedNotifications = []string{
	NotificationBufferDetach,
	NotificationBufferChangedTick,
	NotificationBufferLines,
}

// Disposition records what the router did with a notification.
type Disposition int

const (
	// Ignored marks notifications with an unrecognized name.
	Ignored Disposition = iota
	// Acknowledged marks recognized notifications that carry nothing to act on.
	Acknowledged
	// Delivered marks notifications that produced an Event.
	Delivered
)

func (d Disposition) String() string {
	switch d {
	case Delivered:
		return "delivered"
	case Acknowledged:
		return "acknowledged"
	default:
		return "ignored"
	}
}

// Classification is the result of classifying one notification.
type Classification struct {
	Disposition Disposition
	Event       Event
}

// OK reports whether the classification produced an event.
func (c Classification) OK() bool {
	return c.Disposition == Delivered
}

// Classify maps a notification to an optional Event. It never fails and never
// panics; a detach notification yields KindDelete whatever its arguments.
func Classify(name string, args []any) Classification {
	switch name {
	case NotificationBufferDetach:
		event := Event{Kind: KindDelete}
		if len(args) > 0 {
			event.Buffer, event.HasBuffer = bufferArg(args[0])
		}
		return Classification{Disposition: Delivered, Event: event}
	case NotificationBufferChangedTick, NotificationBufferLines:
		return Classification{Disposition: Acknowledged}
	default:
		return Classification{Disposition: Ignored}
	}
}

func bufferArg(value any) (BufferID, bool) {
	switch v := value.(type) {
	case BufferID:
		return v, true
	case int:
		return BufferID(v), true
	case int8:
		return BufferID(v), true
	case int16:
		return BufferID(v), true
	case int32:
		return BufferID(v), true
	case int64:
		return BufferID(v), true
	case uint8:
		return BufferID(v), true
	case uint16:
		return BufferID(v), true
	case uint32:
		return BufferID(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return BufferID(v), true
	default:
		return 0, false
	}
}

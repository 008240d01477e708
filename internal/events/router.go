package events

import (
	"log/slog"

	"nvimcmd/internal/logging"
)

// Handler receives notifications from a session's dispatch loop. It must not
// block and must not fail.
type Handler interface {
	HandleNotification(name string, args []any) Classification
}

// Router classifies notifications and forwards resulting events to a Bridge.
// It is the producer side of the bridge and runs on the dispatch goroutine.
type Router struct {
	bridge *Bridge
	logger *slog.Logger
}

// NewRouter builds a Router writing into bridge.
func NewRouter(bridge *Bridge, logger *slog.Logger) *Router {
	return &Router{
		bridge: bridge,
		logger: logging.NewComponentLogger(logger, "router"),
	}
}

// HandleNotification classifies one notification and delivers the event, if
// any. Delivery failures are logged and swallowed.
func (r *Router) HandleNotification(name string, args []any) Classification {
	result := Classify(name, args)
	switch result.Disposition {
	case Delivered:
		attrs := []logging.Attr{
			logging.String(logging.FieldNotification, name),
			logging.String(logging.FieldEventType, result.Event.Kind.String()),
		}
		if result.Event.HasBuffer {
			attrs = append(attrs, logging.Int64(logging.FieldBuffer, int64(result.Event.Buffer)))
		}
		r.logger.Debug("notification classified", logging.Args(attrs...)...)
		if err := r.bridge.Send(result.Event); err != nil {
			r.logger.Debug("event dropped: no listener",
				logging.String(logging.FieldNotification, name),
				logging.Error(err),
			)
		}
	case Acknowledged:
		r.logger.Debug("notification acknowledged", logging.String(logging.FieldNotification, name))
	default:
		r.logger.Debug("notification ignored", logging.String(logging.FieldNotification, name))
	}
	return result
}

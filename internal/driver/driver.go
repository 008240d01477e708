package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"nvimcmd/internal/command"
	"nvimcmd/internal/events"
	"nvimcmd/internal/logging"
)

const detachTimeout = 2 * time.Second

var (
	// ErrWaitTimeout is returned by RunAndWait when the wait deadline passes
	// before the buffer is detached.
	ErrWaitTimeout = errors.New("timed out waiting for buffer to close")
	// ErrEditorGone is returned by RunAndWait when the session ends while
	// waiting.
	ErrEditorGone = errors.New("editor connection lost while waiting")
)

// Editor is the subset of an editor session the driver needs.
type Editor interface {
	StartDispatch(h events.Handler)
	Command(ctx context.Context, text string) error
	CurrentBuffer(ctx context.Context) (events.BufferID, error)
	BufferName(ctx context.Context, buffer events.BufferID) (string, error)
	AttachBuffer(ctx context.Context, buffer events.BufferID) error
	DetachBuffer(ctx context.Context, buffer events.BufferID) error
	Done() <-chan struct{}
}

// Options tunes RunAndWait.
type Options struct {
	// WaitTimeout bounds the wait for the terminal event. Zero waits until ctx ends.
	WaitTimeout time.Duration
	// DetachOnExit detaches the buffer when the wait is abandoned.
	DetachOnExit bool
	Logger       *slog.Logger
}

// Driver runs one command against an editor.
type Driver struct {
	editor Editor
	opts   Options
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// New constructs a Driver in the idle state.
func New(editor Editor, opts Options) *Driver {
	return &Driver{
		editor: editor,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "driver"),
	}
}

// State returns the current protocol state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// Run sends cmd and returns once the editor has acknowledged it.
func (d *Driver) Run(ctx context.Context, cmd command.Command) error {
	if err := d.send(ctx, cmd); err != nil {
		return err
	}
	d.setState(StateDone)
	return nil
}

// RunAndWait sends cmd, attaches to the buffer that is current afterwards and
// blocks until that buffer is detached, the wait times out, or ctx ends.
func (d *Driver) RunAndWait(ctx context.Context, cmd command.Command) error {
	bridge := events.NewBridge()
	defer bridge.Close()
	d.editor.StartDispatch(events.NewRouter(bridge, d.opts.Logger))

	if err := d.send(ctx, cmd); err != nil {
		return err
	}

	buffer, err := d.editor.CurrentBuffer(ctx)
	if err != nil {
		return err
	}
	logger := d.logger.With(logging.Int64(logging.FieldBuffer, int64(buffer)))
	name, err := d.editor.BufferName(ctx, buffer)
	if err != nil {
		return err
	}
	logger.Debug("buffer identified", logging.String("name", name))

	if err := d.editor.AttachBuffer(ctx, buffer); err != nil {
		return err
	}
	d.setState(StateResourceAttached)

	waitCtx, cancel := d.waitContext(ctx)
	defer cancel(nil)

	d.setState(StateWaitingForTerminalEvent)
	logger.Debug("waiting for buffer to close", logging.Duration("timeout", d.opts.WaitTimeout))
	for {
		event, err := bridge.Receive(waitCtx)
		if err != nil {
			return d.abandon(ctx, waitCtx, buffer, logger)
		}
		if event.Kind == events.KindDelete && event.Concerns(buffer) {
			d.setState(StateDone)
			logger.Debug("buffer closed")
			return nil
		}
		attrs := []logging.Attr{logging.String(logging.FieldEventType, event.Kind.String())}
		if event.HasBuffer {
			attrs = append(attrs, logging.Int64("event_buffer", int64(event.Buffer)))
		}
		logger.Info("event received while waiting", logging.Args(attrs...)...)
	}
}

func (d *Driver) send(ctx context.Context, cmd command.Command) error {
	text := cmd.String()
	if err := d.editor.Command(ctx, text); err != nil {
		return err
	}
	d.setState(StateCommandSent)
	d.logger.Debug("command sent", logging.String(logging.FieldCommand, text))
	return nil
}

// waitContext derives the wait's context. Its cause records whether the wait
// deadline passed or the editor session stopped.
func (d *Driver) waitContext(ctx context.Context) (context.Context, context.CancelCauseFunc) {
	waitCtx, cancelCause := context.WithCancelCause(ctx)
	if done := d.editor.Done(); done != nil {
		go func() {
			select {
			case <-done:
				cancelCause(ErrEditorGone)
			case <-waitCtx.Done():
			}
		}()
	}
	if d.opts.WaitTimeout <= 0 {
		return waitCtx, cancelCause
	}
	timer := time.AfterFunc(d.opts.WaitTimeout, func() { cancelCause(ErrWaitTimeout) })
	return waitCtx, func(cause error) {
		timer.Stop()
		cancelCause(cause)
	}
}

func (d *Driver) abandon(ctx, waitCtx context.Context, buffer events.BufferID, logger *slog.Logger) error {
	cause := context.Cause(waitCtx)
	if ctx.Err() != nil {
		cause = ctx.Err()
	}

	if d.opts.DetachOnExit && !errors.Is(cause, ErrEditorGone) {
		detachCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), detachTimeout)
		defer cancel()
		if err := d.editor.DetachBuffer(detachCtx, buffer); err != nil {
			logger.Warn("detach after abandoned wait failed", logging.Error(err))
		} else {
			logger.Debug("buffer detached")
		}
	}

	switch {
	case errors.Is(cause, ErrWaitTimeout):
		return fmt.Errorf("%w after %s", ErrWaitTimeout, d.opts.WaitTimeout)
	case errors.Is(cause, ErrEditorGone):
		return ErrEditorGone
	default:
		return cause
	}
}

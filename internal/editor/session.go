package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/neovim/go-client/nvim"

	"nvimcmd/internal/events"
	"nvimcmd/internal/logging"
)

// Options configures a Session.
type Options struct {
	// DialTimeout bounds connection establishment. Zero uses the caller's ctx only.
	DialTimeout time.Duration
	// CallTimeout bounds each synchronous call. Zero leaves calls unbounded.
	CallTimeout time.Duration
	Logger      *slog.Logger
}

// Session is a live RPC connection to the editor.
type Session struct {
	address     Address
	client      *nvim.Nvim
	closer      io.Closer
	logger      *slog.Logger
	callTimeout time.Duration

	mu      sync.Mutex
	handler events.Handler
	closed  bool
	err     error

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the editor at raw and starts the session's read loop.
func Dial(ctx context.Context, raw string, opts Options) (*Session, error) {
	addr, err := ParseAddress(raw)
	if err != nil {
		return nil, err
	}
	if err := checkSocket(addr); err != nil {
		return nil, err
	}

	dialCtx := ctx
	if opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, opts.DialTimeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, addr.Network, addr.Location)
	if err != nil {
		return nil, wrapDialError(addr, err)
	}
	return newSession(conn, addr, opts)
}

func newSession(conn io.ReadWriteCloser, addr Address, opts Options) (*Session, error) {
	s := &Session{
		address:     addr,
		closer:      conn,
		logger:      logging.NewComponentLogger(opts.Logger, "session"),
		callTimeout: opts.CallTimeout,
		done:        make(chan struct{}),
	}

	client, err := nvim.New(conn, conn, conn, s.logf)
	if err != nil {
		_ = conn.Close()
		return nil, &ConnectionError{Address: addr.String(), Message: "start rpc endpoint", Cause: err}
	}
	s.client = client

	for _, name := range events.SubscribedNotifications {
		name := name
		if err := client.RegisterHandler(name, func(args ...interface{}) {
			s.dispatch(name, args)
		}); err != nil {
			_ = client.Close()
			return nil, &ConnectionError{Address: addr.String(), Message: "register " + name, Cause: err}
		}
	}

	go s.serve()
	s.logger.Debug("session established", logging.String(logging.FieldAddress, addr.String()))
	return s, nil
}

func (s *Session) serve() {
	err := s.client.Serve()

	s.mu.Lock()
	if !s.closed {
		s.err = err
	}
	s.mu.Unlock()

	attrs := []logging.Attr{logging.String(logging.FieldAddress, s.address.String())}
	if err != nil {
		attrs = append(attrs, logging.Error(err))
	}
	s.logger.Debug("dispatch loop stopped", logging.Args(attrs...)...)
	close(s.done)
}

func (s *Session) logf(format string, args ...interface{}) {
	s.logger.Debug(fmt.Sprintf(format, args...))
}

// StartDispatch installs h as the receiver of buffer notifications. Until it
// is called, notifications are dropped. Calling it again replaces h.
func (s *Session) StartDispatch(h events.Handler) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

// dispatch runs on the read loop. Handler panics must not stop the loop.
func (s *Session) dispatch(name string, args []interface{}) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h == nil {
		s.logger.Debug("notification dropped before dispatch start", logging.String(logging.FieldNotification, name))
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("notification handler panicked",
				logging.String(logging.FieldNotification, name),
				logging.Any("panic", r),
			)
		}
	}()
	h.HandleNotification(name, normalizeArgs(args))
}

func normalizeArgs(args []interface{}) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if buf, ok := arg.(nvim.Buffer); ok {
			out[i] = events.BufferID(buf)
			continue
		}
		out[i] = arg
	}
	return out
}

// Done is closed once the read loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that stopped the read loop, or nil if it is still
// running or was stopped by Close.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the read loop and releases the transport. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		err = s.client.Close()
		_ = s.closer.Close()
		<-s.done
	})
	return err
}

func (s *Session) call(ctx context.Context, op string, fn func() error) error {
	select {
	case <-s.done:
		return &RPCError{Op: op, Err: ErrSessionClosed}
	default:
	}

	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	result := make(chan error, 1)
	go func() {
		result <- fn()
	}()

	select {
	case err := <-result:
		if err != nil {
			return &RPCError{Op: op, Err: err}
		}
		return nil
	case <-ctx.Done():
		return &RPCError{Op: op, Err: ctx.Err()}
	case <-s.done:
		return &RPCError{Op: op, Err: ErrSessionClosed}
	}
}

// Command runs an Ex command in the editor.
func (s *Session) Command(ctx context.Context, text string) error {
	s.logger.Debug("sending command", logging.String(logging.FieldCommand, text))
	return s.call(ctx, "nvim_command", func() error {
		return s.client.Command(text)
	})
}

// CurrentBuffer returns the buffer shown in the editor's current window.
func (s *Session) CurrentBuffer(ctx context.Context) (events.BufferID, error) {
	var buf nvim.Buffer
	err := s.call(ctx, "nvim_get_current_buf", func() error {
		var err error
		buf, err = s.client.CurrentBuffer()
		return err
	})
	if err != nil {
		return 0, err
	}
	return events.BufferID(buf), nil
}

// BufferName returns the full name of buffer.
func (s *Session) BufferName(ctx context.Context, buffer events.BufferID) (string, error) {
	var name string
	err := s.call(ctx, "nvim_buf_get_name", func() error {
		var err error
		name, err = s.client.BufferName(nvim.Buffer(buffer))
		return err
	})
	return name, err
}

// AttachBuffer subscribes to buffer's lifecycle notifications. Change
// notifications are not requested with the initial buffer contents.
func (s *Session) AttachBuffer(ctx context.Context, buffer events.BufferID) error {
	return s.call(ctx, "nvim_buf_attach", func() error {
		ok, err := s.client.AttachBuffer(nvim.Buffer(buffer), false, map[string]interface{}{})
		if err != nil {
			return err
		}
		if !ok {
			return errAttachRefused
		}
		return nil
	})
}

// DetachBuffer ends the subscription created by AttachBuffer.
func (s *Session) DetachBuffer(ctx context.Context, buffer events.BufferID) error {
	return s.call(ctx, "nvim_buf_detach", func() error {
		ok, err := s.client.DetachBuffer(nvim.Buffer(buffer))
		if err != nil {
			return err
		}
		if !ok {
			return errDetachRefused
		}
		return nil
	})
}

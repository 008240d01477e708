package testsupport

import (
	"context"
	"strings"
	"sync"

	"nvimcmd/internal/events"
)

// FakeEditor records the calls a driver makes and lets tests inject
// notifications through the handler installed by StartDispatch.
type FakeEditor struct {
	// Buffer is reported by CurrentBuffer.
	Buffer     events.BufferID
	BufferPath string
	CommandErr error
	AttachErr  error
	// OnAttach runs inside AttachBuffer, before it returns, with the
	// installed handler.
	OnAttach func(h events.Handler)

	mu       sync.Mutex
	calls    []string
	commands []string
	handler  events.Handler
	closed   bool
	done     chan struct{}
	hangup   sync.Once
}

// NewFakeEditor returns a fake whose current buffer is buffer.
func NewFakeEditor(buffer events.BufferID) *FakeEditor {
	return &FakeEditor{
		Buffer:     buffer,
		BufferPath: "/tmp/notes.txt",
		done:       make(chan struct{}),
	}
}

// DetachOnAttach makes AttachBuffer report a change followed by the buffer's
// detach before returning.
func (f *FakeEditor) DetachOnAttach() {
	f.OnAttach = func(h events.Handler) {
		h.HandleNotification(events.NotificationBufferChangedTick, []any{f.Buffer, int64(2)})
		h.HandleNotification(events.NotificationBufferDetach, []any{f.Buffer})
	}
}

func (f *FakeEditor) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *FakeEditor) StartDispatch(h events.Handler) {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
	f.record("start_dispatch")
}

func (f *FakeEditor) Command(_ context.Context, text string) error {
	f.record("command")
	if f.CommandErr != nil {
		return f.CommandErr
	}
	f.mu.Lock()
	f.commands = append(f.commands, text)
	f.mu.Unlock()
	return nil
}

func (f *FakeEditor) CurrentBuffer(context.Context) (events.BufferID, error) {
	f.record("current_buffer")
	return f.Buffer, nil
}

func (f *FakeEditor) BufferName(context.Context, events.BufferID) (string, error) {
	f.record("buffer_name")
	return f.BufferPath, nil
}

func (f *FakeEditor) AttachBuffer(context.Context, events.BufferID) error {
	f.record("attach")
	if f.AttachErr != nil {
		return f.AttachErr
	}
	if f.OnAttach != nil {
		f.OnAttach(f.Handler())
	}
	return nil
}

func (f *FakeEditor) DetachBuffer(context.Context, events.BufferID) error {
	f.record("detach")
	return nil
}

func (f *FakeEditor) Done() <-chan struct{} {
	return f.done
}

func (f *FakeEditor) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Hangup simulates the editor going away.
func (f *FakeEditor) Hangup() {
	f.hangup.Do(func() { close(f.done) })
}

// Handler returns the handler installed by the last StartDispatch.
func (f *FakeEditor) Handler() events.Handler {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler
}

// Notify delivers a notification as the dispatch loop would.
func (f *FakeEditor) Notify(name string, args ...any) {
	f.Handler().HandleNotification(name, args)
}

// Calls returns the recorded call names joined with commas.
func (f *FakeEditor) Calls() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.calls, ",")
}

// Commands returns the command text sent so far.
func (f *FakeEditor) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func (f *FakeEditor) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

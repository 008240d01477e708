package events_test

import (
	"testing"

	"nvimcmd/internal/events"
)

func TestClassifyUnknownNamesYieldNothing(t *testing.T) {
	names := []string{"", "nvim_buf_detach", "redraw", "nvim_error_event", "NVIM_BUF_DETACH_EVENT", "resource_changed_event"}
	for _, name := range names {
		got := events.Classify(name, []any{int64(1)})
		if got.OK() {
			t.Fatalf("Classify(%q) delivered %+v", name, got.Event)
		}
		if got.Disposition != events.Ignored {
			t.Fatalf("Classify(%q) disposition = %s, want ignored", name, got.Disposition)
		}
		// repeated classification is a no-op with the same answer
		if again := events.Classify(name, nil); again != got {
			t.Fatalf("Classify(%q) not idempotent: %+v vs %+v", name, again, got)
		}
	}
}

func TestClassifyAcknowledgesChangeNotifications(t *testing.T) {
	for _, name := range []string{events.NotificationBufferChangedTick, events.NotificationBufferLines} {
		got := events.Classify(name, []any{int64(3), int64(42)})
		if got.OK() {
			t.Fatalf("Classify(%q) should not deliver an event", name)
		}
		if got.Disposition != events.Acknowledged {
			t.Fatalf("Classify(%q) disposition = %s, want acknowledged", name, got.Disposition)
		}
	}
}

func TestClassifyDetachAlwaysYieldsDelete(t *testing.T) {
	tests := []struct {
		name       string
		args       []any
		wantBuffer events.BufferID
		wantHasBuf bool
	}{
		{name: "nil args", args: nil},
		{name: "empty args", args: []any{}},
		{name: "string arg", args: []any{"garbage"}},
		{name: "nested arg", args: []any{[]any{1, 2}, map[string]any{"x": 1}}},
		{name: "nil element", args: []any{nil}},
		{name: "int64 buffer", args: []any{int64(4)}, wantBuffer: 4, wantHasBuf: true},
		{name: "uint8 buffer", args: []any{uint8(9)}, wantBuffer: 9, wantHasBuf: true},
		{name: "typed buffer", args: []any{events.BufferID(12)}, wantBuffer: 12, wantHasBuf: true},
		{name: "huge uint64", args: []any{^uint64(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := events.Classify(events.NotificationBufferDetach, tt.args)
			if !got.OK() {
				t.Fatalf("expected delivered classification, got %s", got.Disposition)
			}
			if got.Event.Kind != events.KindDelete {
				t.Fatalf("expected delete, got %s", got.Event.Kind)
			}
			if got.Event.HasBuffer != tt.wantHasBuf || got.Event.Buffer != tt.wantBuffer {
				t.Fatalf("buffer = (%d, %v), want (%d, %v)", got.Event.Buffer, got.Event.HasBuffer, tt.wantBuffer, tt.wantHasBuf)
			}
		})
	}
}

func TestEventConcerns(t *testing.T) {
	anonymous := events.Event{Kind: events.KindDelete}
	if !anonymous.Concerns(1) || !anonymous.Concerns(99) {
		t.Fatal("event without buffer id should concern every buffer")
	}
	scoped := events.Event{Kind: events.KindDelete, Buffer: 5, HasBuffer: true}
	if !scoped.Concerns(5) {
		t.Fatal("scoped event should concern its own buffer")
	}
	if scoped.Concerns(6) {
		t.Fatal("scoped event should not concern another buffer")
	}
}

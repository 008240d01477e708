package preflight

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nvimcmd/internal/editor"
	"nvimcmd/internal/testsupport"
)

func listenUnix(t *testing.T) string {
	t.Helper()
	// keep the path short; unix socket paths are length limited
	dir, err := os.MkdirTemp("", "pf")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "s")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	return path
}

func fakeDial(fake *testsupport.FakeEditor, err error) DialFunc {
	return func(context.Context, string) (Pinger, error) {
		if err != nil {
			return nil, err
		}
		return fake, nil
	}
}

func TestCheckAddress(t *testing.T) {
	if r := CheckAddress(Target{LookupErr: &editor.EnvironmentError{Variables: []string{"NVIM"}}}); r.Passed {
		t.Fatal("expected failure for lookup error")
	}
	r := CheckAddress(Target{Address: "/tmp/nvim.sock", Source: "NVIM"})
	if !r.Passed || !strings.Contains(r.Detail, "from NVIM") {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestCheckSocket_NotExist(t *testing.T) {
	r := CheckSocket(editor.Address{Network: "unix", Location: filepath.Join(t.TempDir(), "nope")})
	if r.Passed {
		t.Fatal("expected failure for missing socket")
	}
}

func TestCheckSocket_NotSocket(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := CheckSocket(editor.Address{Network: "unix", Location: f})
	if r.Passed || r.Detail != "not a socket" {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestCheckSocket_OK(t *testing.T) {
	path := listenUnix(t)
	if r := CheckSocket(editor.Address{Network: "unix", Location: path}); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
}

func TestCheckSocket_TCPSkipped(t *testing.T) {
	if r := CheckSocket(editor.Address{Network: "tcp", Location: "127.0.0.1:6666"}); !r.Passed {
		t.Fatal("tcp addresses should pass")
	}
}

func TestRunAllStopsAtFirstFailure(t *testing.T) {
	dialed := false
	dial := func(context.Context, string) (Pinger, error) {
		dialed = true
		return nil, errors.New("unexpected dial")
	}

	results := RunAll(context.Background(), Target{Address: filepath.Join(t.TempDir(), "gone")}, dial)
	if len(results) != 2 || results[1].Passed {
		t.Fatalf("unexpected results %+v", results)
	}
	if dialed {
		t.Fatal("dial attempted after socket check failed")
	}
}

func TestRunAllPasses(t *testing.T) {
	path := listenUnix(t)
	fake := testsupport.NewFakeEditor(12)

	results := RunAll(context.Background(), Target{Address: path, Source: "NVIM"}, fakeDial(fake, nil))
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %+v", results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("%s failed: %s", r.Name, r.Detail)
		}
	}
	if !strings.Contains(results[2].Detail, "12") {
		t.Fatalf("detail should mention buffer: %s", results[2].Detail)
	}
	if !fake.Closed() {
		t.Fatal("session not closed")
	}
}

func TestCheckEditorDialFailure(t *testing.T) {
	r := CheckEditor(context.Background(), "/tmp/x", fakeDial(nil, &editor.ConnectionError{Message: "refused"}))
	if r.Passed || !strings.Contains(r.Detail, "refused") {
		t.Fatalf("unexpected result %+v", r)
	}
}

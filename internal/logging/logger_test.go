package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nvimcmd/internal/config"
	"nvimcmd/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesToConfiguredFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "nvimcmd.log")
	cfg.Logging.Level = "info"

	logger, err := logging.NewFromConfig(&cfg, "")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("attached", logging.Int64(logging.FieldBuffer, 7))

	content := readLog(t, cfg.Logging.File)
	if !strings.Contains(content, "INFO attached") || !strings.Contains(content, "buffer=7") {
		t.Fatalf("unexpected console output %q", content)
	}
}

func TestNewFromConfigLevelOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "nvimcmd.log")

	logger, err := logging.NewFromConfig(&cfg, "debug")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug visible")

	if content := readLog(t, cfg.Logging.File); !strings.Contains(content, "debug visible") {
		t.Fatalf("expected debug line with override, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForWarn(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-warn.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("filtered out")
	logger.Warn("message without caller")

	content := readLog(t, logPath)
	if strings.Contains(content, "filtered out") {
		t.Fatalf("expected info to be filtered at warn level, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerPromotesComponentAndColor(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-color.log")
	color := true
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}, Color: &color})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "session").Error("dispatch stopped", logging.String("reason", "closed pipe"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "\x1b[31mERROR\x1b[0m session: dispatch stopped") {
		t.Fatalf("expected colored level and component prefix, got %q", content)
	}
	if !strings.Contains(content, `reason="closed pipe"`) {
		t.Fatalf("expected quoted attribute, got %q", content)
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component should not be repeated as attribute: %q", content)
	}
}

func TestFileOutputIsNotColorized(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "plain.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("plain")
	if content := readLog(t, logPath); strings.Contains(content, "\x1b[") {
		t.Fatalf("expected no ANSI codes in file output, got %q", content)
	}
}

func TestNewJSONLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("k", "v"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log line: %v", err)
	}
	if entry["level"] != "info" || entry["msg"] != "json message" || entry["k"] != "v" {
		t.Fatalf("unexpected json entry: %#v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %#v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsCorrelationID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithCorrelationID(context.Background(), "req-xyz")
	logging.WithContext(ctx, logger).Info("contextual log")

	if content := readLog(t, logPath); !strings.Contains(content, "correlation_id=req-xyz") {
		t.Fatalf("expected correlation id field, got %q", content)
	}
	if _, ok := logging.CorrelationIDFromContext(context.Background()); ok {
		t.Fatal("expected no correlation id on bare context")
	}
	if id := logging.NewCorrelationID(); len(id) != 36 {
		t.Fatalf("expected uuid string, got %q", id)
	}
}

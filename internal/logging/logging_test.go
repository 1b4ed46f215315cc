package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagpivot/internal/logging"
)

func newFileLogger(t *testing.T, format, level string) (read func() string, path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "tagpivot.log")
	log, err := logging.New(logging.Options{
		Format:           format,
		Level:            level,
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Info("transform complete", logging.Int("emitted_rows", 3), logging.String("output", "/tmp/out csv"))
	return func() string {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(content)
	}, path
}

func TestNewConsoleFormat(t *testing.T) {
	read, _ := newFileLogger(t, "console", "info")
	content := read()
	if !strings.Contains(content, "INFO transform complete") {
		t.Fatalf("expected console line, got %q", content)
	}
	if !strings.Contains(content, "emitted_rows=3") {
		t.Fatalf("expected key=value attr, got %q", content)
	}
	if !strings.Contains(content, `output="/tmp/out csv"`) {
		t.Fatalf("expected quoted value with space, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no source location at info level, got %q", content)
	}
}

func TestNewConsoleDebugAddsSource(t *testing.T) {
	read, _ := newFileLogger(t, "console", "debug")
	if content := read(); !strings.Contains(content, ".go:") {
		t.Fatalf("expected source location at debug level, got %q", content)
	}
}

func TestNewJSONFormat(t *testing.T) {
	read, _ := newFileLogger(t, "json", "info")
	content := read()

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, content)
	}
	if record["msg"] != "transform complete" {
		t.Errorf("msg = %v, want %q", record["msg"], "transform complete")
	}
	if record["level"] != "info" {
		t.Errorf("level = %v, want %q", record["level"], "info")
	}
	if _, ok := record["ts"]; !ok {
		t.Error("expected ts key in JSON record")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestComponentBecomesPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagpivot.log")
	log, err := logging.New(logging.Options{
		Format:           "console",
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(log, "batch").Info("run started")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "INFO batch: run started") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if strings.Contains(string(content), "component=") {
		t.Fatalf("component should not appear as key=value, got %q", content)
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagpivot.log")
	log, err := logging.New(logging.Options{
		Format:           "console",
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithStage(logging.WithRunID(context.Background(), "run-123"), "write")
	logging.WithContext(ctx, log).Info("artifact written")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "run_id=run-123") {
		t.Fatalf("expected run_id field, got %q", content)
	}
	if !strings.Contains(string(content), "stage=write") {
		t.Fatalf("expected stage field, got %q", content)
	}
}

func TestNewNopDiscards(t *testing.T) {
	log := logging.NewNop()
	log.Error("should vanish", logging.Error(nil))
	if log.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should never be enabled")
	}
}

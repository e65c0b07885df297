package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriterDisabledWithoutDir(t *testing.T) {
	w, err := Config{}.Writer("My App")
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	if w != nil {
		t.Fatal("expected nil writer when no dir configured")
	}
}

func TestWriterCreatesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	c := Config{Dir: dir}
	w, err := c.Writer("My App")
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	if w == nil {
		t.Fatal("expected writer")
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "my-app.devserver.log"))
	if err != nil {
		t.Fatalf("read capture file: %v", err)
	}
	if !strings.Contains(string(raw), "hello") {
		t.Fatalf("capture file content: %q", raw)
	}
}

func TestColorHandlerPrefixesLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newColorHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "disk almost full", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[33mWARN"+ansiReset) {
		t.Fatalf("missing colored level prefix: %q", out)
	}
	if !strings.Contains(out, "disk almost full") {
		t.Fatalf("missing message: %q", out)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"My App":        "my-app",
		"API (v2)!":     "api-v2",
		"":              "project",
		"already-fine1": "already-fine1",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Fatalf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}

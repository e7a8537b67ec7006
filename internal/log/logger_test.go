package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestComponentIsAttached(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentBook,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	logger.Debug("loan linked", FieldLoanID, 4)

	out := buf.String()
	if !strings.Contains(out, "component=book") || !strings.Contains(out, "loan_id=4") {
		t.Fatalf("unexpected record: %s", out)
	}

	buf.Reset()
	logger.WithComponent(ComponentStorage).Info("saved")
	if !strings.Contains(buf.String(), "component=storage") {
		t.Fatalf("expected storage component: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "loanbook.log")
	logger, closer, err := OpenFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("started", FieldVersion, "dev")
	closer.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(raw), "hidden") || !strings.Contains(string(raw), "version=dev") {
		t.Fatalf("unexpected log contents: %s", raw)
	}
}

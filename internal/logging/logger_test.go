package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/i474232898/weatherman/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.AppConfig{AppEnv: "prod", LogLevel: slog.LevelInfo}, "weatherman")

	logger.Debug("hidden")
	logger.Info("readings loaded", "months", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["app"] != "weatherman" || entry["env"] != "prod" || entry["msg"] != "readings loaded" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewDev(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.AppConfig{AppEnv: "dev", LogLevel: slog.LevelDebug}, "weatherman")

	logger.Debug("chart drawn")

	if !strings.Contains(buf.String(), "chart drawn") {
		t.Fatalf("expected message in output, got %q", buf.String())
	}
}

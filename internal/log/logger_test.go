package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "info", "json")
	t.Cleanup(func() { Setup(nil, "off", "") })

	Debug().Msg("hidden")
	Info().Str("msg_type", "AddTodoMsg").Msg("applied")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "info" || entry["message"] != "applied" || entry["msg_type"] != "AddTodoMsg" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestParseLogLevelDefaults(t *testing.T) {
	if got := parseLogLevel("nonsense"); got.String() != "info" {
		t.Fatalf("expected info fallback, got %s", got)
	}
	if got := parseLogLevel(" WARNING "); got.String() != "warn" {
		t.Fatalf("expected warn, got %s", got)
	}
}

func TestSetupConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "debug", "console")
	t.Cleanup(func() { Setup(nil, "off", "") })

	Debug().Str("msg_type", "ToggleAllMsg").Msg("applied")
	out := buf.String()
	if !strings.Contains(out, "DBG") || !strings.Contains(out, "applied") || !strings.Contains(out, "msg_type=ToggleAllMsg") {
		t.Fatalf("unexpected console line %q", out)
	}
}

package utils

import (
	"bytes"
	"strings"
	"testing"
)

func captureLog(t *testing.T, level LogLevel) *bytes.Buffer {
	var buf bytes.Buffer
	oldWriter, oldLevel := LogWriter, GlobalLogLevel
	LogWriter, GlobalLogLevel = &buf, level
	t.Cleanup(func() {
		LogWriter, GlobalLogLevel = oldWriter, oldLevel
	})
	return &buf
}

func TestLogLevels(t *testing.T) {
	t.Run("NoticeDisabled", func(t *testing.T) {
		buf := captureLog(t, LogLevelError|LogLevelInfo)
		Noticef("Ledger", "replay %d", 1)
		Debugf("Ledger", "debug %d", 2)
		if buf.Len() != 0 {
			t.Fatalf("expected no output, got %q", buf.String())
		}
	})

	t.Run("NoticeEnabled", func(t *testing.T) {
		buf := captureLog(t, LogLevelNotice)
		Noticef("Ledger", "replay %d", 1)
		Logf("Ledger", "info")
		line := buf.String()
		if !strings.HasSuffix(line, " [Ledger] NOTICE replay 1\n") {
			t.Fatalf("unexpected line %q", line)
		}
		if strings.Count(line, "\n") != 1 {
			t.Fatalf("expected a single line, got %q", line)
		}
	})
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	encoder := NewJSONEncoder(&buf)
	if err := encoder.Encode(map[string]string{"tag": "<a&b>"}); err != nil {
		t.Fatal(err)
	}
	expected, err := MarshalJSON(map[string]string{"tag": "<a&b>"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != string(expected) {
		t.Fatalf("expected %s, got %s", expected, buf.String())
	}
}

package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelNames(t *testing.T) {
	levels := map[string]Level{
		"debug":   DebugLevel,
		"info":    InfoLevel,
		"warning": WarningLevel,
		"warn":    WarningLevel,
		"error":   ErrorLevel,
	}
	for name, expected := range levels {
		got, e := ParseLevel(name)
		if e != nil || got != expected {
			t.Fatalf("level %q: expected %d, got %d, %v", name, expected, got, e)
		}
	}

	if _, e := ParseLevel("loud"); e == nil {
		t.Fatal("error expected for an unknown level name")
	}
}

func TestSinkFlushOnClose(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf, DebugLevel)

	for i := 0; i < 20; i++ {
		if !s.Logf(InfoLevel, "message %d", i) {
			t.Fatalf("message %d not enqueued", i)
		}
	}
	s.Close()

	out := buf.String()
	for _, part := range []string{"message 0", "message 19", "logger_test.go:"} {
		if !strings.Contains(out, part) {
			t.Fatalf("expected %q in the output, got %q", part, out)
		}
	}
}

func TestSinkLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf, WarningLevel)

	if s.Logf(InfoLevel, "quiet") {
		t.Fatal("a message below the minimum level must not be enqueued")
	}
	if !s.Logf(ErrorLevel, "loud") {
		t.Fatal("an error message must be enqueued")
	}

	s.SetLevel(DebugLevel)
	if !s.Logf(DebugLevel, "verbose") {
		t.Fatal("a debug message must pass after lowering the level")
	}
	s.Close()

	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") || !strings.Contains(out, "verbose") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSinkEnabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf, WarningLevel)
	defer s.Close()

	if s.Enabled(InfoLevel) || !s.Enabled(WarningLevel) || !s.Enabled(ErrorLevel) {
		t.Fatal("wrong level gating")
	}

	var nilSink *Sink
	if nilSink.Enabled(ErrorLevel) {
		t.Fatal("a nil sink accepts nothing")
	}
}

func TestSinkClosed(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf, DebugLevel)
	s.Close()
	s.Close() // repeated close is a no-op

	if s.Logf(ErrorLevel, "dropped") {
		t.Fatal("a closed sink must not enqueue")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestDefaultSink(t *testing.T) {
	var buf bytes.Buffer
	Start(&buf, InfoLevel)

	if Debugf("quiet") {
		t.Fatal("a debug message must not pass at info level")
	}
	SetLevel(DebugLevel)
	if !Debugf("verbose %d", 1) || !Infof("info") || !Warningf("warning") || !Errorf("error") {
		t.Fatal("messages not enqueued")
	}
	Stop()

	out := buf.String()
	for _, part := range []string{"verbose 1", "info", "warning", "error"} {
		if !strings.Contains(out, part) {
			t.Fatalf("expected %q in the output, got %q", part, out)
		}
	}

	// with no sink installed logging is a silent no-op
	if Errorf("nowhere") {
		t.Fatal("a stopped logger must not enqueue")
	}
	Stop()
}

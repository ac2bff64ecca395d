package logger

import (
	"os"
	"strings"
	"testing"
)

func TestOpenLogfClose(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Logf("generate %s (%d bytes)", "deck.pptx", 1024)
	l.Close()

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	for _, want := range []string{"service started", "generate deck.pptx (1024 bytes)", "service stopped"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q, got:\n%s", want, content)
		}
	}
}

func TestOpenNumbersRunsWithinDay(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	if err != nil {
		t.Fatalf("Open first: %v", err)
	}
	first.Close()

	second, err := Open(dir)
	if err != nil {
		t.Fatalf("Open second: %v", err)
	}
	second.Close()

	if first.Path() == second.Path() {
		t.Fatalf("runs share log file %s", first.Path())
	}
	if !strings.HasSuffix(first.Path(), "_1.log") || !strings.HasSuffix(second.Path(), "_2.log") {
		t.Errorf("run numbering: got %s then %s", first.Path(), second.Path())
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Logf("dropped")
	l.Close()
	if l.Path() != "" {
		t.Errorf("nil logger path = %q, want empty", l.Path())
	}
}

func TestCloseTwice(t *testing.T) {
	l, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Close()
	l.Close()
	l.Logf("after close")
}

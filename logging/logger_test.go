package logging

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	log "gopkg.in/inconshreveable/log15.v2"
)

var lineRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - (INFO|ERROR|WARNING|DEBUG|CRITICAL) - .+$`)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestSetupWritesFormattedLines(t *testing.T) {
	defer Close()
	path := filepath.Join(t.TempDir(), "app.log")

	logger := Setup("format", path, log.LvlInfo)
	logger.Info("City selected", "city", "Delhi")
	logger.Error("Request failed")
	logger.Debug("filtered out")

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	for _, l := range lines {
		if !lineRe.MatchString(l) {
			t.Errorf("line does not match format: %q", l)
		}
	}
	if !strings.HasSuffix(lines[0], " - INFO - City selected city=Delhi") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " - ERROR - Request failed") {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestSetupTwiceKeepsOneSink(t *testing.T) {
	defer Close()
	path := filepath.Join(t.TempDir(), "app.log")

	first := Setup("dup", path, log.LvlInfo)
	second := Setup("dup", path, log.LvlInfo)
	if first != second {
		t.Fatal("expected the same logger for the same name")
	}
	second.Info("once")

	if lines := readLines(t, path); len(lines) != 1 {
		t.Fatalf("expected a single line, got %d: %q", len(lines), lines)
	}
}

func TestSetupUpdatesLevel(t *testing.T) {
	defer Close()
	path := filepath.Join(t.TempDir(), "app.log")

	Setup("level", path, log.LvlError).Info("dropped")
	Setup("level", path, log.LvlDebug).Debug("kept")

	lines := readLines(t, path)
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "DEBUG - kept") {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestRotationPolicy(t *testing.T) {
	defer Close()
	Setup("rotation", filepath.Join(t.TempDir(), "app.log"), log.LvlInfo)

	mu.Lock()
	s := sinks["rotation"]
	mu.Unlock()
	if s.file.MaxSize != 5 || s.file.MaxBackups != 2 {
		t.Errorf("unexpected rotation policy: size=%d backups=%d", s.file.MaxSize, s.file.MaxBackups)
	}
}

func TestUnwritableSinkDoesNotPanic(t *testing.T) {
	defer Close()
	path := filepath.Join(t.TempDir(), "missing", "dir", "app.log")
	if err := os.WriteFile(filepath.Dir(filepath.Dir(path)), []byte("file, not dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := Setup("broken", path, log.LvlInfo)
	logger.Error("this write fails silently")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Lvl{
		"debug":   log.LvlDebug,
		"INFO":    log.LvlInfo,
		"warning": log.LvlWarn,
		"error":   log.LvlError,
		"":        log.LvlInfo,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

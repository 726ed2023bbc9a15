package console

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestColors(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{w: &buf, color: true}

	c.Info("saved %d rows", 3)
	c.Warn("nothing to write")
	c.Alert("failed: %s", "boom")

	want := "\x1b[36msaved 3 rows\x1b[0m\n" +
		"\x1b[33mnothing to write\x1b[0m\n" +
		"\x1b[31mfailed: boom\x1b[0m\n"
	if buf.String() != want {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	c.Info("saved %d rows", 3)
	c.Alert("failed: %s", "boom")

	if want := "saved 3 rows\nfailed: boom\n"; buf.String() != want {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPlainWhenRedirectedToFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	New(f).Warn("nothing to write")

	b, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "nothing to write\n" {
		t.Errorf("unexpected file content %q", b)
	}
}

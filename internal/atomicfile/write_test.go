package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "phases", "moon.png")
	if err := Write(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "png" {
		t.Errorf("got %q", got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moon.png")
	for _, s := range []string{"first", "second"} {
		if err := Write(path, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("content = %q", got)
	}
}

type failingReader struct{ n int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.n > 0 {
		r.n--
		return copy(p, "partial"), nil
	}
	return 0, errors.New("source closed")
}

func TestWriteFromFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moon.png")
	if err := Write(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFrom(path, &failingReader{n: 2}, 0o644); err == nil {
		t.Fatal("expected an error from the failing reader")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "original" {
		t.Errorf("target changed to %q", got)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWritePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perms.png")
	if err := Write(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o600 == 0 {
		t.Errorf("permissions = %o", info.Mode().Perm())
	}
}

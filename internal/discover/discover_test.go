package discover

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsTranscript(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"morning.txt", true},
		{"notes.md", true},
		{"Morning.TXT", true},
		{"evening.txt.zst", true},
		{"notes.md.zst", true},
		{"audio.wav", false},
		{"archive.tar.zst", false},
		{".hidden.txt", false},
		{"upload.txt.partial", false},
		{"README", false},
	}
	for _, tt := range tests {
		if got := IsTranscript(tt.path); got != tt.want {
			t.Errorf("IsTranscript(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestScan_SortsByModTime(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, mtime time.Time) {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("some transcript text here"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}

	base := time.Now().Add(-time.Hour)
	write("second.txt", base.Add(2*time.Minute))
	write("first.md", base)
	write("third.txt", base.Add(4*time.Minute))
	write("ignored.wav", base)

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	want := []string{"first.md", "second.txt", "third.txt"}
	if len(names) != len(want) {
		t.Fatalf("Scan = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Scan[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestScan_SkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".voice-vault")
	if err := os.MkdirAll(hidden, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(hidden, "state.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "real.txt"), []byte("entry"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 || files[0].Name != "real.txt" {
		t.Errorf("Scan = %v, want only real.txt", files)
	}
}

func TestScan_NestedDirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "phone-uploads")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "nested.txt"), []byte("entry"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 || files[0].Name != "nested.txt" {
		t.Errorf("Scan = %v, want nested.txt", files)
	}
}

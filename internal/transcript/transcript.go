// Package transcript loads and normalizes voice-journal transcript files.
// Transcripts arrive as plain text (.txt, .md) or zstd-compressed text
// (.zst), typically dropped by a transcription tool.
package transcript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Transcript is one loaded voice-journal entry.
type Transcript struct {
	Path  string
	Text  string
	Stats Stats
}

// LoadFile reads a transcript from disk, decompressing .zst files
// transparently.
func LoadFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	t, err := Load(r)
	if err != nil {
		return nil, err
	}
	t.Path = path
	return t, nil
}

// Load reads a transcript from a reader and normalizes it.
func Load(r io.Reader) (*Transcript, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	text := normalize(string(raw))
	return &Transcript{Text: text, Stats: computeStats(text)}, nil
}

// normalize converts CRLF to LF, strips a UTF-8 BOM, collapses runs of blank
// lines, and trims surrounding whitespace.
func normalize(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// IsTrivial reports whether the transcript is too short or too empty to be
// worth a journal note: a stray button press, a test recording, a cough.
func (t *Transcript) IsTrivial() bool {
	if t.Stats.Words < 5 {
		return true
	}
	lower := strings.ToLower(t.Text)
	for _, phrase := range []string{"testing one two three", "test test test", "is this thing on"} {
		if strings.TrimRight(lower, ".!? ") == phrase {
			return true
		}
	}
	return false
}

// Package discover finds dropped transcript files waiting to be processed.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TranscriptFile represents a discovered transcript on disk.
type TranscriptFile struct {
	Path    string
	Name    string // base filename
	ModTime int64  // unix timestamp for sorting
	Size    int64
}

// Extensions a transcription tool is expected to drop. Matching is
// case-insensitive and .zst stacks on the text extensions.
var transcriptExts = map[string]bool{
	".txt": true,
	".md":  true,
}

// Scan walks dir recursively and returns all transcript files, sorted by
// modification time (oldest first) so drops are processed in arrival order.
func Scan(dir string) ([]TranscriptFile, error) {
	var results []TranscriptFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if info.IsDir() {
			// Hidden directories (state dirs, editor droppings) are not inboxes.
			if name := filepath.Base(path); name != "." && strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsTranscript(path) {
			return nil
		}

		results = append(results, TranscriptFile{
			Path:    path,
			Name:    filepath.Base(path),
			ModTime: info.ModTime().Unix(),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].ModTime != results[j].ModTime {
			return results[i].ModTime < results[j].ModTime
		}
		return results[i].Path < results[j].Path
	})

	return results, nil
}

// IsTranscript reports whether path looks like a transcript drop: .txt, .md,
// or a .zst-compressed variant of either. Hidden and partial files are
// excluded.
func IsTranscript(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".partial") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".zst" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	return transcriptExts[ext]
}

// Package archive files away processed transcripts as zstd-compressed
// copies keyed by content hash, so the original recording text survives
// after the inbox is cleaned up.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Archive compresses srcPath into archiveDir/{hash-prefix}.txt.zst and
// returns the archive path. The content hash keys the archive so renamed
// drops of the same recording land on the same file.
func Archive(srcPath, archiveDir, contentHash string) (string, error) {
	key := archiveKey(contentHash)
	if key == "" {
		return "", fmt.Errorf("empty content hash for %s", srcPath)
	}

	destPath := Path(contentHash, archiveDir)

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// Decompress decompresses archivePath to a temp file.
// Returns the temp file path and a cleanup function the caller must defer.
func Decompress(archivePath string) (string, func(), error) {
	src, err := os.Open(archivePath)
	if err != nil {
		return "", nil, fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return "", nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	tmp, err := os.CreateTemp("", "vj-decompress-*.txt")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, decoder); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("decompress: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("close temp: %w", err)
	}

	cleanup := func() { os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}

// IsArchived returns true if an archive file exists for the content hash.
func IsArchived(contentHash, archiveDir string) bool {
	_, err := os.Stat(Path(contentHash, archiveDir))
	return err == nil
}

// Path returns the deterministic archive path for a content hash.
func Path(contentHash, archiveDir string) string {
	return filepath.Join(archiveDir, archiveKey(contentHash)+".txt.zst")
}

// archiveKey shortens the hex content hash to a filesystem-friendly prefix.
// 16 hex chars is plenty against collision at journal scale.
func archiveKey(contentHash string) string {
	if len(contentHash) > 16 {
		return contentHash[:16]
	}
	return contentHash
}

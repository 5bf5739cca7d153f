// Package cache fingerprints the inputs of a generation run so that watch mode
// can skip regeneration when nothing relevant changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
)

// FileHasher computes content hashes for cache keys
type FileHasher struct{}

// NewFileHasher creates a new file hasher
func NewFileHasher() *FileHasher {
	return &FileHasher{}
}

// HashFile computes a SHA-256 hash of the file contents
func (fh *FileHasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashContent computes a SHA-256 hash of the given content
func (fh *FileHasher) HashContent(content []byte) string {
	hasher := sha256.New()
	hasher.Write(content)
	return hex.EncodeToString(hasher.Sum(nil))
}

// HashString computes a SHA-256 hash of the given string
func (fh *FileHasher) HashString(content string) string {
	return fh.HashContent([]byte(content))
}

// Fingerprint combines the content hashes of paths and the extra settings
// into one key. The order of paths does not matter, a missing file is an error.
func (fh *FileHasher) Fingerprint(paths []string, settings ...string) (string, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	hasher := sha256.New()
	for _, path := range sorted {
		sum, err := fh.HashFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", path, err)
		}
		fmt.Fprintf(hasher, "%s=%s\n", path, sum)
	}
	for _, s := range settings {
		fmt.Fprintf(hasher, "%s\n", s)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

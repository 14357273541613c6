// Package hash provides content hashing for installed-skill drift
// detection.
//
// The status command compares a SHA-256 digest of the source skill tree
// against the installed destination tree to tell an up-to-date install
// from a locally modified one.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Hasher provides an abstraction for content hashing operations.
type Hasher interface {
	// HashFile computes the hash of the file at the given path.
	HashFile(path string) (string, error)

	// HashTree computes a single hash over a directory tree, covering
	// relative file paths and file contents.
	HashTree(root string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile computes the SHA-256 hash of the file at the given path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashTree computes the SHA-256 hash of a directory tree. Files are
// visited in sorted relative-path order and both the relative path and
// the content feed the digest, so two trees hash equal exactly when they
// hold the same files with the same bytes.
func (h *SHA256Hasher) HashTree(root string) (string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to walk tree: %w", err)
	}
	sort.Strings(files)

	hasher := sha256.New()
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("failed to compute relative path: %w", err)
		}
		// Path separator normalized so hashes agree across platforms.
		fmt.Fprintf(hasher, "%s\x00", filepath.ToSlash(rel))

		file, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open file: %w", err)
		}
		_, err = io.Copy(hasher, file)
		_ = file.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		fmt.Fprint(hasher, "\x00")
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FakeHasher implements Hasher with deterministic hashes for testing.
type FakeHasher struct {
	hashes map[string]string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash sets the hash for a specific path (for testing).
func (h *FakeHasher) SetHash(path, hash string) {
	h.hashes[path] = hash
}

// HashFile returns the predetermined hash for the given path.
func (h *FakeHasher) HashFile(path string) (string, error) {
	if hash, ok := h.hashes[path]; ok {
		return hash, nil
	}
	return "fakehash", nil
}

// HashTree returns the predetermined hash for the given root.
func (h *FakeHasher) HashTree(root string) (string, error) {
	return h.HashFile(root)
}

// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem mutations performed by the installer go through the FS
// interface. Installs are staged: the source tree is copied into a
// temporary directory next to the destination and renamed into place, so
// an interrupted copy never leaves a half-written skill behind.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FS abstracts the filesystem operations used by the planner and installer.
type FS interface {
	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// InstallTree copies the directory tree at src to dst via a staging
	// directory. When replace is true an existing dst is removed first so
	// the result matches src exactly, with no stale leftovers.
	InstallTree(src, dst string, replace bool) error

	// ValidateRelPath validates a relative path for safety.
	ValidateRelPath(relPath string) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Stat returns file info, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists checks if a path exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// InstallTree copies src to dst via a staging directory in dst's parent.
// The rename at the end is the only step that makes the new tree visible.
func (fs *RealFS) InstallTree(src, dst string, replace bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("source must be a directory: %s", src)
	}

	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	stage, err := os.MkdirTemp(parent, ".skills-stage-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	installed := false
	defer func() {
		if !installed {
			_ = os.RemoveAll(stage)
		}
	}()

	if err := fs.copyDirContents(src, stage); err != nil {
		return err
	}
	if err := os.Chmod(stage, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set staging directory mode: %w", err)
	}

	if replace {
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("failed to remove existing destination: %w", err)
		}
	}

	if err := os.Rename(stage, dst); err != nil {
		return fmt.Errorf("failed to move staged tree into place: %w", err)
	}
	installed = true
	return nil
}

// copyDirContents recursively copies the entries of src into the existing
// directory dst. Symlinks are followed so the copy holds real content.
func (fs *RealFS) copyDirContents(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// Use Stat (not the entry's Lstat info) so symlinks resolve to
		// their target type and content.
		info, err := os.Stat(srcPath)
		if err != nil {
			return fmt.Errorf("failed to stat source entry: %w", err)
		}

		if info.IsDir() {
			if err := os.Mkdir(dstPath, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			if err := fs.copyDirContents(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies a single file from src to dst.
func copyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return dstFile.Sync()
}

// ValidateRelPath validates a relative path for safety.
// Returns an error if the path is empty, absolute, or escapes upward.
func (fs *RealFS) ValidateRelPath(relPath string) error {
	cleaned := filepath.Clean(relPath)

	if cleaned == "" || cleaned == "." {
		return fmt.Errorf("invalid path: empty or current directory")
	}

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid path: must be relative, got absolute path %q", cleaned)
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid path: path traversal not allowed in %q", cleaned)
	}

	return nil
}

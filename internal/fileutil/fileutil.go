// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNotDirectory     = errors.New("source is not a directory")
	ErrDestinationExist = errors.New("destination already exists")
	ErrSymlinkLoop      = errors.New("symlink loop")
)

// dirPermissions is used for directories created by CopyTree when the source
// mode cannot be read.
const dirPermissions = 0o750

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./html2pdf.yaml" -> true (relative path)
//   - "/etc/html2pdf.yaml" -> true (absolute)
//   - "C:\config\html2pdf.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// CopyTree mirrors src into dst, which must not exist yet. Regular files are
// copied byte for byte with their permission bits and directories keep their
// relative layout. Symlinks are resolved: the linked file or directory is
// copied in their place, so dst never links back outside itself. Dangling
// links and special files are skipped.
// Returns the number of regular files copied.
func CopyTree(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("reading source %s: %w", src, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotDirectory, src)
	}
	if _, err := os.Lstat(dst); err == nil {
		return 0, fmt.Errorf("%w: %s", ErrDestinationExist, dst)
	}

	root, err := filepath.EvalSymlinks(src)
	if err != nil {
		return 0, fmt.Errorf("resolving source %s: %w", src, err)
	}

	c := &treeCopier{active: make(map[string]bool)}
	if err := c.copyDir(root, dst); err != nil {
		return c.copied, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return c.copied, nil
}

// treeCopier carries state across the nested walks started for linked
// directories.
type treeCopier struct {
	copied int
	active map[string]bool // resolved directories being walked, for loop detection
}

func (c *treeCopier) copyDir(src, dst string) error {
	c.active[src] = true
	defer delete(c.active, src)

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, dirMode(d))
		case d.Type()&fs.ModeSymlink != 0:
			return c.copyLink(path, target)
		case d.Type().IsRegular():
			if err := copyFile(path, target); err != nil {
				return err
			}
			c.copied++
			return nil
		default:
			// Skip sockets, devices and named pipes.
			return nil
		}
	})
}

// copyLink copies whatever link points to into dst.
func (c *treeCopier) copyLink(link, dst string) error {
	resolved, err := filepath.EvalSymlinks(link)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return err
	}

	switch {
	case info.IsDir():
		if c.active[resolved] {
			return fmt.Errorf("%w: %s", ErrSymlinkLoop, link)
		}
		return c.copyDir(resolved, dst)
	case info.Mode().IsRegular():
		if err := copyFile(resolved, dst); err != nil {
			return err
		}
		c.copied++
		return nil
	default:
		return nil
	}
}

// dirMode returns the permission bits of a directory entry, falling back to
// dirPermissions. Owner write and execute are always kept so the copy stays
// fillable and removable.
func dirMode(d fs.DirEntry) fs.FileMode {
	info, err := d.Info()
	if err != nil {
		return dirPermissions
	}
	return info.Mode().Perm() | 0o700
}

// copyFile copies a regular file, preserving its permission bits.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src) // #nosec G304 -- walking a user-provided asset directory
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm()|0o600) // #nosec G304 -- destination inside our temp dir
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// Package archive reads course snapshots packed into zip archives.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
)

// SkipRest returned by EntryFunc stops Walk without error.
var SkipRest = errors.New("skip remaining entries")

// EntryFunc is called for every matching file in archive. Reader is valid
// only until function returns.
type EntryFunc func(name string, r io.Reader) error

// Walk calls fn for each file in archive which name has one of extensions
// (compared case insensitively), in archive order. Entries with absolute
// paths or ".." components make Walk fail.
func Walk(archive string, exts []string, fn EntryFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !hasExt(name, exts) {
			continue
		}
		if err := visit(f, fn); err != nil {
			if errors.Is(err, SkipRest) {
				return nil
			}
			return err
		}
	}
	return nil
}

func visit(f *zip.File, fn EntryFunc) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("zip entry %q: %w", f.Name, err)
	}
	defer rc.Close()
	return fn(f.Name, rc)
}

func hasExt(name string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(path.Ext(name)))
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

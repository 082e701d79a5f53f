package manifest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// DefaultPattern matches the manifest of every book activity in a backup.
const DefaultPattern = "activities/book_*/book.xml"

// Locate returns the files below root whose slash-separated relative path
// matches pattern, sorted. It fails with a manifest-not-found error when
// nothing matches.
func Locate(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := Find(root, pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, core.ManifestNotFound(filepath.Join(root, filepath.FromSlash(pattern)))
	}
	return matches, nil
}

// Find is Locate without the not-found error.
func Find(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("compiling manifest pattern %q: %w", pattern, err)
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if g.Match(filepath.ToSlash(rel)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}

	sort.Strings(matches)
	return matches, nil
}

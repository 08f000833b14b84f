package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverOptions controls which files are considered vault-managed.
type DiscoverOptions struct {
	// InventoryFile is a single well-known path, included only if it exists.
	InventoryFile string

	// SearchRoot is walked recursively for files named exactly Basename.
	SearchRoot string

	// Basename is the exact filename identifying a sensitive file.
	Basename string

	// ExtraPatterns are additional doublestar globs relative to root.
	ExtraPatterns []string
}

// Discover returns the ordered candidate set under root: the inventory
// file first (when present), then the recursive basename matches in walk
// order, then sorted extra-pattern matches. The order is stable for a
// given filesystem state so dry-run previews match real runs. Paths are
// returned relative to root when possible.
func Discover(root string, opts DiscoverOptions) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	if opts.InventoryFile != "" {
		inv := filepath.Join(root, opts.InventoryFile)
		if info, err := os.Stat(inv); err == nil && info.Mode().IsRegular() {
			add(inv)
		}
	}

	if opts.SearchRoot != "" && opts.Basename != "" {
		searchRoot := filepath.Join(root, opts.SearchRoot)
		err := filepath.WalkDir(searchRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// A missing search root means nothing to find, not a failure.
				if os.IsNotExist(err) {
					return filepath.SkipAll
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if d.Name() == opts.Basename {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", searchRoot, err)
		}
	}

	var extras []string
	for _, pattern := range opts.ExtraPatterns {
		absPattern := pattern
		if !filepath.IsAbs(pattern) {
			absPattern = filepath.Join(root, pattern)
		}
		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				extras = append(extras, m)
			}
		}
	}
	// Glob results across patterns have no inherent order; sort them so
	// repeated runs list files identically.
	sort.Strings(extras)
	files = append(files, extras...)

	return files, nil
}

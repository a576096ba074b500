package scan

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

type Options struct {
	CWD             string
	ExcludePatterns []string
}

type FilterResult struct {
	Paths    []string
	Excluded []string
}

// Filter drops every path matching one of the exclude patterns and keeps the
// rest in input order, duplicates included.
func Filter(paths []string, opts Options) FilterResult {
	res := FilterResult{Paths: make([]string, 0, len(paths))}
	if len(opts.ExcludePatterns) == 0 {
		res.Paths = append(res.Paths, paths...)
		return res
	}
	for _, p := range paths {
		if isExcluded(p, opts) {
			res.Excluded = append(res.Excluded, p)
			continue
		}
		res.Paths = append(res.Paths, p)
	}
	return res
}

// isExcluded matches the path as given, then relative to CWD, then as an
// absolute path.
func isExcluded(path string, opts Options) bool {
	candidates := []string{filepath.ToSlash(filepath.Clean(path))}
	abs := path
	if !filepath.IsAbs(abs) && opts.CWD != "" {
		abs = filepath.Join(opts.CWD, path)
	}
	if opts.CWD != "" {
		if rel, err := filepath.Rel(opts.CWD, abs); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	candidates = append(candidates, filepath.ToSlash(abs))
	for _, p := range opts.ExcludePatterns {
		for _, c := range candidates {
			ok, err := doublestar.Match(p, c)
			if err == nil && ok {
				return true
			}
		}
	}
	return false
}

// ValidatePatterns reports the first malformed glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern: %s", p)
		}
	}
	return nil
}

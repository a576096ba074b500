// Package pathlist reads separator-delimited lists of input paths, as given
// to --files0-from.
package pathlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"rwc/internal/textutil"
)

// Separators used by Read when none are given.
var (
	NUL          = []byte{0}
	NULOrNewline = []byte{0, '\n'}
)

// InvalidPathError is a path-list segment that is not valid UTF-8.
type InvalidPathError struct {
	Index int
	Raw   []byte
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path #%d: %s", e.Index+1, textutil.Lossy(e.Raw))
}

// MultiError collects every failure found while reading a path list.
type MultiError struct {
	Errs []error
}

func (e *MultiError) Error() string {
	parts := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("%d errors: %s", len(e.Errs), strings.Join(parts, "; "))
}

func (e *MultiError) Unwrap() []error { return e.Errs }

// Read splits r on any of seps (NUL when empty) and returns the segments as
// paths. All read failures are reported together, then all decode failures;
// a partial list is never returned. An input ending in a separator does not
// produce a trailing empty path.
func Read(r io.Reader, seps []byte) ([]string, error) {
	if len(seps) == 0 {
		seps = NUL
	}
	raw, errs := split(r, seps)
	if len(errs) > 0 {
		return nil, &MultiError{Errs: errs}
	}
	paths := make([]string, 0, len(raw))
	for i, seg := range raw {
		if !utf8.Valid(seg) {
			errs = append(errs, &InvalidPathError{Index: i, Raw: seg})
			continue
		}
		paths = append(paths, string(seg))
	}
	if len(errs) > 0 {
		return nil, &MultiError{Errs: errs}
	}
	return paths, nil
}

func split(r io.Reader, seps []byte) ([][]byte, []error) {
	var out [][]byte
	var errs []error
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if i := indexAny(data, seps); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	})
	for sc.Scan() {
		out = append(out, bytes.Clone(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("read path list: %w", err))
	}
	return out, errs
}

func indexAny(data, seps []byte) int {
	for i, b := range data {
		if bytes.IndexByte(seps, b) >= 0 {
			return i
		}
	}
	return -1
}

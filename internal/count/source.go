package count

import (
	"io"
	"os"
)

// Source is an input that can be counted: a PathSource or a StreamSource.
type Source interface {
	isSource()
}

// PathSource names a file. Its size can be looked up without reading it.
type PathSource string

// StreamSource is an already open byte stream such as standard input.
type StreamSource struct {
	R io.Reader
}

func (PathSource) isSource()   {}
func (StreamSource) isSource() {}

// From produces the Counts for src. A zero Selection counts the defaults.
func From(src Source, sel Selection) (Counts, error) {
	return countWith(src, sel.OrDefault(), BufferSize)
}

// CountPath counts the file at path.
func CountPath(path string, sel Selection) (Counts, error) {
	return From(PathSource(path), sel)
}

// CountReader counts everything readable from r.
func CountReader(r io.Reader, sel Selection) (Counts, error) {
	return From(StreamSource{R: r}, sel)
}

func countWith(src Source, sel Selection, size int) (Counts, error) {
	switch s := src.(type) {
	case PathSource:
		return countPath(string(s), sel, size)
	case StreamSource:
		return countStream(s.R, sel, size)
	default:
		panic("count: unknown source type")
	}
}

func countPath(path string, sel Selection, size int) (Counts, error) {
	if sel.BytesOnly() {
		info, err := os.Stat(path)
		if err != nil {
			return Counts{}, err
		}
		if info.Mode().IsRegular() {
			return lengthLookup(info), nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, err
	}
	defer f.Close()
	return countStream(f, sel, size)
}

func countStream(r io.Reader, sel Selection, size int) (Counts, error) {
	switch {
	case sel.Chars:
		return decodeCount(r, size)
	case sel.BytesOnly():
		return scanBytes(r, size)
	case sel.Lines && !sel.Words:
		return scanLines(r, size)
	default:
		return scanWordsLines(r, size)
	}
}

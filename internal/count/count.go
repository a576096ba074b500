// Package count implements the counting engine: the optional metric value,
// the per-input Counts record and the scan strategies that produce it.
package count

import (
	"encoding/json"
	"strconv"
)

// BufferSize is the chunk size used by every streaming scan.
const BufferSize = 1 << 20

// Count is a metric that is either present or not applicable to the scan
// strategy that produced it.
type Count struct {
	val uint64
	ok  bool
}

func Present(n uint64) Count { return Count{val: n, ok: true} }

func Absent() Count { return Count{} }

// Value returns the count and whether it is present.
func (c Count) Value() (uint64, bool) { return c.val, c.ok }

func (c Count) IsPresent() bool { return c.ok }

// String renders the value in decimal, or "N/A" when absent.
func (c Count) String() string {
	if !c.ok {
		return "N/A"
	}
	return strconv.FormatUint(c.val, 10)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return []byte("null"), nil
	}
	return json.Marshal(c.val)
}

// Accumulate adds c to total when present and returns total unchanged otherwise.
func Accumulate(total uint64, c Count) uint64 {
	if c.ok {
		return total + c.val
	}
	return total
}

// Counts holds the four metrics computed for one input.
type Counts struct {
	Bytes Count `json:"bytes"`
	Chars Count `json:"chars"`
	Words Count `json:"words"`
	Lines Count `json:"lines"`
}

// Selection names the metrics requested by the caller.
type Selection struct {
	Bytes bool
	Chars bool
	Words bool
	Lines bool
}

// DefaultSelection is used when no metric was requested explicitly.
func DefaultSelection() Selection {
	return Selection{Bytes: true, Words: true, Lines: true}
}

func (s Selection) IsZero() bool {
	return !(s.Bytes || s.Chars || s.Words || s.Lines)
}

// OrDefault returns s, or DefaultSelection when nothing is selected.
func (s Selection) OrDefault() Selection {
	if s.IsZero() {
		return DefaultSelection()
	}
	return s
}

// BytesOnly reports whether bytes is the sole requested metric.
func (s Selection) BytesOnly() bool {
	return s.Bytes && !(s.Chars || s.Words || s.Lines)
}

// Names lists the selected metrics in display order.
func (s Selection) Names() []string {
	out := make([]string, 0, 4)
	if s.Bytes {
		out = append(out, "bytes")
	}
	if s.Chars {
		out = append(out, "chars")
	}
	if s.Words {
		out = append(out, "words")
	}
	if s.Lines {
		out = append(out, "lines")
	}
	return out
}

// Pick returns the selected metrics of c in display order.
func (s Selection) Pick(c Counts) []Count {
	out := make([]Count, 0, 4)
	if s.Bytes {
		out = append(out, c.Bytes)
	}
	if s.Chars {
		out = append(out, c.Chars)
	}
	if s.Words {
		out = append(out, c.Words)
	}
	if s.Lines {
		out = append(out, c.Lines)
	}
	return out
}

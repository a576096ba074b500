package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"rwc/internal/count"
	"rwc/internal/pathlist"
	"rwc/internal/scan"
)

func DefaultJobs() int {
	n := runtime.NumCPU()
	if n > 8 {
		return 8
	}
	if n < 1 {
		return 1
	}
	return n
}

// Run counts every input named by opts and returns the entries sorted by
// path. A failure on one input is recorded in its entry and never aborts the
// batch; the returned error is reserved for problems that prevent deciding
// what to count.
func Run(opts Options, stdin io.Reader) (Report, error) {
	opts = opts.Normalize()
	res := Report{}
	if stdin == nil {
		stdin = os.Stdin
	}

	var paths []string
	switch {
	case opts.Files0From != "":
		if len(opts.Paths) > 0 {
			return res, &ArgErr{Msg: "file operands cannot be combined with --files0-from"}
		}
		list, err := readPathList(opts.Files0From, stdin)
		if err != nil {
			return res, err
		}
		paths = list
	case len(opts.Paths) > 0:
		paths = opts.Paths
	default:
		opts.ShowTotals = true
		slog.Debug("counting standard input", "metrics", opts.Selection.Names())
		c, err := count.CountReader(stdin, opts.Selection)
		res.Entries = []Entry{{Path: StdinLabel, Counts: c, Err: err}}
		return finish(res, opts), nil
	}

	filtered := scan.Filter(paths, scan.Options{CWD: opts.CWD, ExcludePatterns: opts.ExcludePatterns})
	for _, p := range filtered.Excluded {
		slog.Debug("input excluded", "path", p)
	}
	res.Excluded = filtered.Excluded

	slog.Debug("counting inputs", "inputs", len(filtered.Paths), "jobs", opts.Jobs, "metrics", opts.Selection.Names())
	res.Entries = countAll(filtered.Paths, opts)
	sortEntries(res.Entries)
	return finish(res, opts), nil
}

func readPathList(from string, stdin io.Reader) ([]string, error) {
	if from == Files0FromStdin {
		paths, err := pathlist.Read(stdin, pathlist.NULOrNewline)
		if err != nil {
			return nil, &InputErr{Path: from, Err: err}
		}
		return paths, nil
	}
	f, err := os.Open(from)
	if err != nil {
		return nil, &InputErr{Path: from, Err: err}
	}
	defer f.Close()
	paths, err := pathlist.Read(f, pathlist.NUL)
	if err != nil {
		return nil, &InputErr{Path: from, Err: err}
	}
	return paths, nil
}

// countAll fans the inputs out to opts.Jobs workers. Each worker writes only
// the slots of the inputs it took, so entries needs no locking.
func countAll(paths []string, opts Options) []Entry {
	entries := make([]Entry, len(paths))
	if len(paths) == 0 {
		return entries
	}
	jobs := opts.Jobs
	if jobs > len(paths) {
		jobs = len(paths)
	}
	in := make(chan int)
	wg := sync.WaitGroup{}

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range in {
				entries[idx] = countOne(paths[idx], opts.Selection)
			}
		}()
	}

	for i := range paths {
		in <- i
	}
	close(in)
	wg.Wait()
	return entries
}

func countOne(path string, sel count.Selection) Entry {
	c, err := count.CountPath(path, sel)
	if err != nil {
		slog.Debug("count failed", "path", path, "err", err)
		return Entry{Path: path, Err: err}
	}
	return Entry{Path: path, Counts: c}
}

func finish(res Report, opts Options) Report {
	res.Options = opts
	res.Totals = computeTotals(res.Entries, opts.Selection)
	res.Summary = Summary{TotalInputs: len(res.Entries), Excluded: len(res.Excluded)}
	for _, e := range res.Entries {
		if e.OK() {
			res.Summary.Counted++
			continue
		}
		res.Summary.Errors++
		res.HasInputErr = true
	}
	return res
}

// computeTotals sums each selected metric over the successful entries.
func computeTotals(entries []Entry, sel count.Selection) count.Counts {
	var b, c, w, l uint64
	for _, e := range entries {
		if !e.OK() {
			continue
		}
		b = count.Accumulate(b, e.Counts.Bytes)
		c = count.Accumulate(c, e.Counts.Chars)
		w = count.Accumulate(w, e.Counts.Words)
		l = count.Accumulate(l, e.Counts.Lines)
	}
	pick := func(on bool, n uint64) count.Count {
		if on {
			return count.Present(n)
		}
		return count.Absent()
	}
	return count.Counts{
		Bytes: pick(sel.Bytes, b),
		Chars: pick(sel.Chars, c),
		Words: pick(sel.Words, w),
		Lines: pick(sel.Lines, l),
	}
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return comparePaths(entries[i].Path, entries[j].Path) < 0
	})
}

type pathComponent struct {
	kind int
	name string
}

const (
	compRoot = iota
	compCur
	compParent
	compNormal
)

// components splits p the way path ordering sees it: repeated and trailing
// separators vanish, and "." survives only as the first component.
func components(p string) []pathComponent {
	p = filepath.ToSlash(p)
	var out []pathComponent
	if strings.HasPrefix(p, "/") {
		out = append(out, pathComponent{kind: compRoot})
	}
	for i, s := range strings.Split(p, "/") {
		switch s {
		case "":
		case ".":
			if i == 0 {
				out = append(out, pathComponent{kind: compCur})
			}
		case "..":
			out = append(out, pathComponent{kind: compParent})
		default:
			out = append(out, pathComponent{kind: compNormal, name: s})
		}
	}
	return out
}

// comparePaths orders paths component by component, so "a/b" sorts before
// "a-b". Paths with equal components fall back to plain string order.
func comparePaths(a, b string) int {
	ca, cb := components(a), components(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		if ca[i].kind != cb[i].kind {
			if ca[i].kind < cb[i].kind {
				return -1
			}
			return 1
		}
		if c := strings.Compare(ca[i].name, cb[i].name); c != 0 {
			return c
		}
	}
	switch {
	case len(ca) < len(cb):
		return -1
	case len(ca) > len(cb):
		return 1
	}
	return strings.Compare(a, b)
}

func decideExitCode(res Report) int {
	if res.HasInputErr {
		return 3
	}
	return 0
}

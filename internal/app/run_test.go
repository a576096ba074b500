package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rwc/internal/count"
	"rwc/internal/pathlist"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func findEvent(events []map[string]any, typ string) map[string]any {
	for _, e := range events {
		if e["type"] == typ {
			return e
		}
	}
	return nil
}

func countEvent(events []map[string]any, typ string) int {
	n := 0
	for _, e := range events {
		if e["type"] == typ {
			n++
		}
	}
	return n
}

func TestDefaultJobs(t *testing.T) {
	n := DefaultJobs()
	if n < 1 || n > 8 {
		t.Fatalf("unexpected jobs: %d", n)
	}
}

func TestOptionsNormalize(t *testing.T) {
	o := Options{}.Normalize()
	if o.Selection != count.DefaultSelection() {
		t.Fatalf("default metrics not substituted: %+v", o.Selection)
	}
	if o.Jobs < 1 {
		t.Fatalf("jobs not filled: %d", o.Jobs)
	}
	o = Options{Selection: count.Selection{Chars: true}, Jobs: 3}.Normalize()
	if o.Selection.Bytes || !o.Selection.Chars || o.Jobs != 3 {
		t.Fatalf("explicit options overwritten: %+v", o)
	}
}

func TestRunStdin(t *testing.T) {
	res, err := Run(Options{}, strings.NewReader("this is some text\nthis is another line"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != StdinLabel {
		t.Fatalf("unexpected entries: %+v", res.Entries)
	}
	c := res.Entries[0].Counts
	if c.Bytes.String() != "38" || c.Words.String() != "8" || c.Lines.String() != "1" || c.Chars.IsPresent() {
		t.Fatalf("unexpected counts: %+v", c)
	}
	if !res.Options.ShowTotals {
		t.Fatalf("stdin mode should force totals")
	}
	if res.Totals.Bytes.String() != "38" || res.Totals.Chars.IsPresent() {
		t.Fatalf("unexpected totals: %+v", res.Totals)
	}
	if res.ExitCode() != 0 {
		t.Fatalf("unexpected exit code: %d", res.ExitCode())
	}
}

func TestRunFilesIsolatesFailures(t *testing.T) {
	tmp := t.TempDir()
	ok := writeFile(t, tmp, "b.txt", "hello world\n")
	missing := filepath.Join(tmp, "a.txt")
	res, err := Run(Options{Paths: []string{ok, missing}}, strings.NewReader(""))
	if err != nil {
		t.Fatalf("a missing input must not abort the batch: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("unexpected entries: %+v", res.Entries)
	}
	if res.Entries[0].Path != missing || res.Entries[0].OK() {
		t.Fatalf("missing file should sort first as an error: %+v", res.Entries[0])
	}
	if res.Entries[1].Path != ok || !res.Entries[1].OK() {
		t.Fatalf("existing file should succeed: %+v", res.Entries[1])
	}
	if res.Entries[1].Counts.Words.String() != "2" {
		t.Fatalf("unexpected counts: %+v", res.Entries[1].Counts)
	}
	if !res.HasInputErr || res.ExitCode() != 3 {
		t.Fatalf("partial failure should be flagged: %+v", res.Summary)
	}
	if res.Options.ShowTotals {
		t.Fatalf("totals should not be forced for explicit paths")
	}
	if res.Summary.Counted != 1 || res.Summary.Errors != 1 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
}

func TestRunManyInputs(t *testing.T) {
	tmp := t.TempDir()
	var paths []string
	for i := 0; i < 40; i++ {
		paths = append(paths, writeFile(t, tmp, fmt.Sprintf("f%02d.txt", 39-i), strings.Repeat("x ", i)))
	}
	res, err := Run(Options{Paths: paths, Jobs: 4, Selection: count.Selection{Words: true}}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Entries) != 40 {
		t.Fatalf("unexpected entry count: %d", len(res.Entries))
	}
	for i, e := range res.Entries {
		want := filepath.Join(tmp, fmt.Sprintf("f%02d.txt", i))
		if e.Path != want {
			t.Fatalf("entry %d out of order: %s", i, e.Path)
		}
		if e.Counts.Words.String() != fmt.Sprint(39-i) {
			t.Fatalf("%s: unexpected words %s", e.Path, e.Counts.Words)
		}
	}
	if res.Totals.Words.String() != fmt.Sprint(39*40/2) {
		t.Fatalf("unexpected total: %s", res.Totals.Words)
	}
}

func TestRunFiles0From(t *testing.T) {
	tmp := t.TempDir()
	a := writeFile(t, tmp, "a.txt", "one two\n")
	b := writeFile(t, tmp, "b.txt", "three\n")
	list := writeFile(t, tmp, "list", b+"\x00"+a)

	res, err := Run(Options{Files0From: list}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Entries) != 2 || res.Entries[0].Path != a || res.Entries[1].Path != b {
		t.Fatalf("unexpected entries: %+v", res.Entries)
	}

	res, err = Run(Options{Files0From: Files0FromStdin}, strings.NewReader(a+"\n"+b+"\n"))
	if err != nil {
		t.Fatalf("run from stdin failed: %v", err)
	}
	if len(res.Entries) != 2 || !res.Entries[0].OK() || !res.Entries[1].OK() {
		t.Fatalf("unexpected entries: %+v", res.Entries)
	}
}

func TestRunFiles0FromErrors(t *testing.T) {
	tmp := t.TempDir()
	_, err := Run(Options{Files0From: "-", Paths: []string{"x"}}, nil)
	var ae *ArgErr
	if !errors.As(err, &ae) {
		t.Fatalf("expected ArgErr, got %T %v", err, err)
	}

	_, err = Run(Options{Files0From: filepath.Join(tmp, "missing")}, nil)
	var ie *InputErr
	if !errors.As(err, &ie) || !os.IsNotExist(ie.Err) {
		t.Fatalf("expected InputErr for missing list, got %T %v", err, err)
	}

	_, err = Run(Options{Files0From: "-"}, strings.NewReader("ok\x00bad\xff\x00also\xfe"))
	var me *pathlist.MultiError
	if !errors.As(err, &me) || len(me.Errs) != 2 {
		t.Fatalf("expected MultiError with both failures, got %v", err)
	}
}

func TestRunExclude(t *testing.T) {
	tmp := t.TempDir()
	keep := writeFile(t, tmp, "keep.txt", "x\n")
	drop := writeFile(t, tmp, "drop.log", "y\n")
	res, err := Run(Options{Paths: []string{drop, keep}, CWD: tmp, ExcludePatterns: []string{"*.log"}}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != keep {
		t.Fatalf("unexpected entries: %+v", res.Entries)
	}
	if len(res.Excluded) != 1 || res.Summary.Excluded != 1 {
		t.Fatalf("excluded input not reported: %+v", res.Excluded)
	}
}

func TestComparePaths(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"a/b", "a-b", -1},
		{"a", "a/b", -1},
		{"/x", "a", -1},
		{"./a", "a", -1},
		{"../a", "a", -1},
		{"a//b", "a/b", -1},
		{"a/./b", "a/b", -1},
		{"b", "a", 1},
		{"same", "same", 0},
	}
	for _, c := range cases {
		if got := comparePaths(c.a, c.b); got != c.want {
			t.Fatalf("compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSortEntriesStable(t *testing.T) {
	e := []Entry{
		{Path: "b", Err: errors.New("first")},
		{Path: "a"},
		{Path: "b", Err: errors.New("second")},
	}
	sortEntries(e)
	if e[0].Path != "a" || e[1].Err.Error() != "first" || e[2].Err.Error() != "second" {
		t.Fatalf("sort should be stable: %+v", e)
	}
}

func TestComputeTotals(t *testing.T) {
	entries := []Entry{
		{Path: "a", Counts: count.Counts{Bytes: count.Present(3), Lines: count.Present(1)}},
		{Path: "b", Err: errors.New("boom")},
		{Path: "c", Counts: count.Counts{Bytes: count.Present(4), Lines: count.Present(2)}},
	}
	got := computeTotals(entries, count.Selection{Bytes: true, Lines: true})
	if got.Bytes.String() != "7" || got.Lines.String() != "3" {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.Words.IsPresent() || got.Chars.IsPresent() {
		t.Fatalf("unselected totals should be absent: %+v", got)
	}
}

func TestEvents(t *testing.T) {
	tmp := t.TempDir()
	ok := writeFile(t, tmp, "ok.txt", "a b\n")
	res, err := Run(Options{Paths: []string{ok, filepath.Join(tmp, "nope.txt")}, ShowTotals: true, Version: "test"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	events := Events(res)
	if events[0]["type"] != "meta" || events[len(events)-1]["type"] != "summary" {
		t.Fatalf("unexpected framing: %v", events)
	}
	if countEvent(events, "counts") != 1 || countEvent(events, "error") != 1 || countEvent(events, "totals") != 1 {
		t.Fatalf("unexpected events: %v", events)
	}
	ev := findEvent(events, "error")
	if ev["code"] != "input_path_not_found" || ev["doc_key"] != "input.path_not_found" {
		t.Fatalf("unexpected error event: %v", ev)
	}
	if _, ok := findEvent(events, "counts")["chars"]; ok {
		t.Fatalf("unselected metric should not be emitted")
	}
	if findEvent(events, "summary")["exit_code"].(int) != 3 {
		t.Fatalf("unexpected summary: %v", findEvent(events, "summary"))
	}
}

func TestErrorCode(t *testing.T) {
	tmp := t.TempDir()
	if ErrorCode(nil) != "" {
		t.Fatalf("nil error should have no code")
	}
	if ErrorCode(&count.DecodeError{}) != "decode_failed" {
		t.Fatalf("decode error code mismatch")
	}
	_, err := os.Open(filepath.Join(tmp, "missing"))
	if ErrorCode(err) != "input_path_not_found" {
		t.Fatalf("not found code mismatch")
	}
	if ErrorCode(errors.New("x")) != "input_read_failed" {
		t.Fatalf("fallback code mismatch")
	}
	if hintByCode("anything").DocKey != "general.error" {
		t.Fatalf("fallback hint mismatch")
	}
}

func TestErrTypes(t *testing.T) {
	if (&ConfigErr{Msg: "a"}).Error() != "a" {
		t.Fatalf("config err string mismatch")
	}
	if (&ArgErr{Msg: "b"}).Error() != "b" {
		t.Fatalf("arg err string mismatch")
	}
	ie := &InputErr{Path: "list", Err: os.ErrNotExist}
	if !errors.Is(ie, os.ErrNotExist) || !strings.HasPrefix(ie.Error(), "list: ") {
		t.Fatalf("input err mismatch: %v", ie)
	}
}

package app

import (
	"rwc/internal/count"
)

// StdinLabel is the path shown for anonymous standard input.
const StdinLabel = "Stdin"

// Files0FromStdin as Files0From reads the path list from standard input.
const Files0FromStdin = "-"

type Options struct {
	Selection       count.Selection
	ShowTotals      bool
	Format          string
	Jobs            int
	Files0From      string
	Paths           []string
	CWD             string
	ExcludePatterns []string
	Version         string
	Args            []string
}

// Normalize substitutes the default metrics when none were requested and
// fills in the worker count.
func (o Options) Normalize() Options {
	o.Selection = o.Selection.OrDefault()
	if o.Jobs <= 0 {
		o.Jobs = DefaultJobs()
	}
	return o
}

// Entry is the outcome of counting one input. Err is set when counting failed,
// in which case Counts is zero.
type Entry struct {
	Path   string
	Counts count.Counts
	Err    error
}

func (e Entry) OK() bool { return e.Err == nil }

type Summary struct {
	TotalInputs int `json:"total_inputs"`
	Counted     int `json:"counted"`
	Errors      int `json:"error_count"`
	Excluded    int `json:"excluded"`
}

type Report struct {
	Entries     []Entry
	Options     Options
	Totals      count.Counts
	Excluded    []string
	Summary     Summary
	HasInputErr bool
}

// ExitCode is the process status the report calls for.
func (r Report) ExitCode() int {
	return decideExitCode(r)
}

package cmd

import "strings"

func rootLongHelp() string {
	return strings.TrimSpace(`
Print byte, character, word and newline counts for each input.

Inputs (pick one):
- file operands: rwc a.txt b.txt
- a path list: --files0-from LIST reads NUL separated paths from LIST;
  --files0-from - reads NUL or newline separated paths from standard input
- nothing: standard input is counted as "Stdin" and a Totals row is added

Metrics:
- -b/--bytes  byte count
- -c/--chars  UTF-8 character count; fails on invalid UTF-8
- -w/--words  runs of non-whitespace separated by ASCII whitespace
- -l/--lines  newline count
With no metric flag, bytes, words and lines are printed.

Output formats (--format):
- table (default), csv
- json / ndjson events: meta, counts, error, totals, summary

Configuration (lowest to highest precedence):
- --config FILE (YAML): metrics, show_totals, format, jobs, exclude_patterns
- RWC_* environment variables: RWC_METRICS, RWC_SHOW_TOTALS, RWC_FORMAT,
  RWC_JOBS, RWC_EXCLUDE_PATTERNS
- command-line flags

Exit codes:
- 0 ok
- 2 argument error
- 3 input error (some input could not be counted)
- 4 config error
- 5 internal error

A file literally named "version" must be passed as ./version.
`)
}

func rootExampleHelp() string {
	return strings.TrimSpace(`
  # default metrics for two files
  rwc notes.txt README.md

  # characters and lines, with a totals row
  rwc -c -l --show-totals docs/*.md

  # count standard input
  cat notes.txt | rwc

  # count every file find prints
  find . -name '*.go' -print0 | rwc --files0-from - --format csv

  # skip logs, emit ndjson events
  rwc --exclude '**/*.log' --format ndjson $(ls)
`)
}

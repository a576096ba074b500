package cmd

import (
	"io"
	"os"
	"strings"

	"rwc/internal/config"
	"rwc/internal/output"
)

type cliErrorHint struct {
	NextAction  string
	FixExample  string
	DocKey      string
	Recoverable bool
}

// writeCLIError reports a run-level failure as json/ndjson events so that
// consumers of those formats never have to parse stderr.
func writeCLIError(w io.Writer, format string, args []string, code, category, detail string, exitCode int) {
	h := cliHintByCode(code)
	events := []map[string]any{
		{
			"type":          "meta",
			"tool":          "rwc",
			"version":       Version,
			"args":          args,
			"output_format": format,
		},
		{
			"type":        "error",
			"code":        code,
			"category":    category,
			"detail":      detail,
			"next_action": h.NextAction,
			"fix_example": h.FixExample,
			"doc_key":     h.DocKey,
			"recoverable": h.Recoverable,
		},
		{
			"type":         "summary",
			"total_inputs": 0,
			"counted":      0,
			"error_count":  1,
			"excluded":     0,
			"exit_code":    exitCode,
		},
	}
	_ = output.WriteEvents(w, format, events)
}

func isEventFormat(format string) bool {
	return format == output.FormatJSON || format == output.FormatNDJSON
}

// detectFormatFromArgs finds the output format without a full flag parse,
// falling back to RWC_FORMAT.
func detectFormatFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		a := strings.TrimSpace(args[i])
		if a == "--" {
			break
		}
		if a == "--format" {
			if i+1 < len(args) {
				return args[i+1]
			}
			continue
		}
		if strings.HasPrefix(a, "--format=") {
			return strings.TrimPrefix(a, "--format=")
		}
	}
	if v, ok := os.LookupEnv(config.EnvPrefix + "FORMAT"); ok {
		return strings.TrimSpace(v)
	}
	return output.FormatTable
}

func cliHintByCode(code string) cliErrorHint {
	switch code {
	case "files0_from_conflict":
		return cliErrorHint{
			NextAction:  "pass either file operands or --files0-from, not both",
			FixExample:  "rwc --files0-from list.txt",
			DocKey:      "arg.files0_from_conflict",
			Recoverable: true,
		}
	case "invalid_output_format":
		return cliErrorHint{
			NextAction:  "set --format to table, csv, json or ndjson",
			FixExample:  "rwc notes.txt --format csv",
			DocKey:      "arg.invalid_output_format",
			Recoverable: true,
		}
	case "invalid_exclude_pattern":
		return cliErrorHint{
			NextAction:  "fix the glob passed to --exclude",
			FixExample:  "rwc --exclude '**/*.log' a.txt b.log",
			DocKey:      "arg.invalid_exclude_pattern",
			Recoverable: true,
		}
	case "path_list_invalid":
		return cliErrorHint{
			NextAction:  "make sure every entry of the path list is valid utf-8 and the list is readable",
			FixExample:  "find . -type f -print0 > list && rwc --files0-from list",
			DocKey:      "input.path_list_invalid",
			Recoverable: true,
		}
	case "config_invalid":
		return cliErrorHint{
			NextAction:  "fix the config file or the RWC_* environment variables and retry",
			FixExample:  "rwc --config /path/to/rwc.yaml notes.txt",
			DocKey:      "config.invalid",
			Recoverable: true,
		}
	case "cwd_failed":
		return cliErrorHint{
			NextAction:  "make sure the current working directory is accessible",
			FixExample:  "cd /path/to/workspace && rwc notes.txt",
			DocKey:      "runtime.cwd_failed",
			Recoverable: true,
		}
	case "output_write_failed":
		return cliErrorHint{
			NextAction:  "check that the output pipe or redirect target is writable",
			FixExample:  "rwc notes.txt --format ndjson > result.ndjson",
			DocKey:      "runtime.output_write_failed",
			Recoverable: true,
		}
	case "unknown_command":
		return cliErrorHint{
			NextAction:  "check the flag spelling or see the help",
			FixExample:  "rwc --help",
			DocKey:      "arg.unknown_command",
			Recoverable: true,
		}
	default:
		return cliErrorHint{
			NextAction:  "fix the arguments or config according to detail and retry",
			FixExample:  "rwc --help",
			DocKey:      "general.error",
			Recoverable: true,
		}
	}
}

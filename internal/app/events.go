package app

import "rwc/internal/count"

// Events flattens a report into the event stream written by the json and
// ndjson formats: meta, one counts or error event per input, totals when
// requested, then summary.
func Events(r Report) []map[string]any {
	opts := r.Options
	events := make([]map[string]any, 0, len(r.Entries)+3)
	events = append(events, map[string]any{
		"type":             "meta",
		"tool":             "rwc",
		"version":          opts.Version,
		"args":             opts.Args,
		"output_format":    opts.Format,
		"metrics":          opts.Selection.Names(),
		"show_totals":      opts.ShowTotals,
		"jobs":             opts.Jobs,
		"exit_code_policy": map[string]int{"ok": 0, "arg_error": 2, "input_error": 3, "config_error": 4, "internal_error": 5},
	})
	for _, e := range r.Entries {
		if !e.OK() {
			events = append(events, buildErrorEvent("input", ErrorCode(e.Err), e.Path, e.Err.Error()))
			continue
		}
		ev := map[string]any{"type": "counts", "path": e.Path}
		putMetrics(ev, opts.Selection, e.Counts)
		events = append(events, ev)
	}
	if opts.ShowTotals {
		ev := map[string]any{"type": "totals"}
		putMetrics(ev, opts.Selection, r.Totals)
		events = append(events, ev)
	}
	events = append(events, map[string]any{
		"type":         "summary",
		"total_inputs": r.Summary.TotalInputs,
		"counted":      r.Summary.Counted,
		"error_count":  r.Summary.Errors,
		"excluded":     r.Summary.Excluded,
		"exit_code":    decideExitCode(r),
	})
	return events
}

func putMetrics(ev map[string]any, sel count.Selection, c count.Counts) {
	names := sel.Names()
	for i, v := range sel.Pick(c) {
		ev[names[i]] = v
	}
}

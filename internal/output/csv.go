package output

import (
	"encoding/csv"
	"io"

	"rwc/internal/app"
	"rwc/internal/count"
)

// writeCSV writes one record per input. A failed input carries its error
// message in place of the metrics.
func writeCSV(w io.Writer, r app.Report) error {
	sel := r.Options.Selection
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"path"}, sel.Names()...)); err != nil {
		return err
	}
	for _, e := range r.Entries {
		rec := []string{e.Path, ""}
		if e.OK() {
			rec = metricCells(e.Path, sel.Pick(e.Counts))
		} else {
			rec[1] = e.Err.Error()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	if r.Options.ShowTotals {
		if err := cw.Write(metricCells(totalsLabel, sel.Pick(r.Totals))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func metricCells(label string, vals []count.Count) []string {
	out := make([]string, 0, len(vals)+1)
	out = append(out, label)
	for _, v := range vals {
		out = append(out, v.String())
	}
	return out
}

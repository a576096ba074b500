package output

import (
	"encoding/json"
	"fmt"
	"io"

	"rwc/internal/app"
)

const (
	FormatTable  = "table"
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

var Formats = []string{FormatTable, FormatCSV, FormatJSON, FormatNDJSON}

func ValidateFormat(v string) error {
	for _, f := range Formats {
		if v == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s (expected table/csv/json/ndjson)", v)
}

// Write renders the report in the given format.
func Write(w io.Writer, format string, r app.Report) error {
	switch format {
	case FormatTable:
		return writeTable(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatJSON, FormatNDJSON:
		return WriteEvents(w, format, app.Events(r))
	default:
		return ValidateFormat(format)
	}
}

func WriteEvents(w io.Writer, format string, events []map[string]any) error {
	switch format {
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, e := range events {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		obj := map[string]any{"events": events}
		b, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	default:
		return fmt.Errorf("unsupported event format: %s", format)
	}
}

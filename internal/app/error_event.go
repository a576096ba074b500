package app

import (
	"errors"
	"io/fs"
	"syscall"

	"rwc/internal/count"
)

type errorHint struct {
	NextAction  string
	FixExample  string
	DocKey      string
	Recoverable bool
}

// ErrorCode classifies a per-input counting failure.
func ErrorCode(err error) string {
	var de *count.DecodeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &de):
		return "decode_failed"
	case errors.Is(err, fs.ErrNotExist):
		return "input_path_not_found"
	case errors.Is(err, fs.ErrPermission):
		return "input_permission_denied"
	case errors.Is(err, syscall.EISDIR):
		return "input_is_directory"
	default:
		return "input_read_failed"
	}
}

func buildErrorEvent(category, code, path, detail string) map[string]any {
	h := hintByCode(code)
	return map[string]any{
		"type":        "error",
		"code":        code,
		"category":    category,
		"path":        path,
		"detail":      detail,
		"next_action": h.NextAction,
		"fix_example": h.FixExample,
		"doc_key":     h.DocKey,
		"recoverable": h.Recoverable,
	}
}

func hintByCode(code string) errorHint {
	switch code {
	case "input_path_not_found":
		return errorHint{
			NextAction:  "check that the path exists and is spelled correctly",
			FixExample:  "rwc /path/to/file.txt",
			DocKey:      "input.path_not_found",
			Recoverable: true,
		}
	case "input_permission_denied", "input_read_failed":
		return errorHint{
			NextAction:  "check the file permissions and that the file is readable",
			FixExample:  "chmod +r /path/to/file.txt && rwc /path/to/file.txt",
			DocKey:      "input.path_access",
			Recoverable: true,
		}
	case "input_is_directory":
		return errorHint{
			NextAction:  "pass the files inside the directory instead of the directory itself",
			FixExample:  "find /path/to/dir -type f -print0 | rwc --files0-from -",
			DocKey:      "input.is_directory",
			Recoverable: true,
		}
	case "decode_failed":
		return errorHint{
			NextAction:  "the file is not valid utf-8; count it without --chars or convert it first",
			FixExample:  "iconv -f gbk -t utf-8 input.txt -o output.txt && rwc --chars output.txt",
			DocKey:      "input.decode_failed",
			Recoverable: true,
		}
	default:
		return errorHint{
			NextAction:  "fix the input according to detail and retry",
			FixExample:  "rwc --help",
			DocKey:      "general.error",
			Recoverable: true,
		}
	}
}

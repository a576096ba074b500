package cmd

import "fmt"

const (
	ExitOK       = 0
	ExitArg      = 2
	ExitInput    = 3
	ExitConfig   = 4
	ExitInternal = 5
)

// ExitError carries the process exit code. Kind is a stable error code used
// in json/ndjson error events; an empty Msg means nothing is left to print.
type ExitError struct {
	Code int
	Kind string
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Msg
}

func categoryByExitCode(code int) string {
	switch code {
	case ExitArg:
		return "arg"
	case ExitInput:
		return "input"
	case ExitConfig:
		return "config"
	default:
		return "internal"
	}
}

package app

import "fmt"

type ConfigErr struct{ Msg string }

func (e *ConfigErr) Error() string { return e.Msg }

type ArgErr struct{ Msg string }

func (e *ArgErr) Error() string { return e.Msg }

// InputErr means the set of inputs could not be determined, e.g. the
// --files0-from list was unreadable or held malformed entries.
type InputErr struct {
	Path string
	Err  error
}

func (e *InputErr) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *InputErr) Unwrap() error { return e.Err }

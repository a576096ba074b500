package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"rwc/internal/app"
	"rwc/internal/config"
	"rwc/internal/count"
	"rwc/internal/output"
	"rwc/internal/scan"
)

type commonFlags struct {
	Bytes       bool
	Chars       bool
	Words       bool
	Lines       bool
	ShowTotals  bool
	Format      string
	Files0From  string
	Jobs        int
	Config      string
	Exclude     []string
	Debug       bool
	ShowVersion bool
}

func Execute() int {
	return execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var ee *ExitError
		if !errors.As(err, &ee) {
			ee = &ExitError{Code: ExitArg, Kind: "unknown_command", Msg: err.Error()}
		}
		if ee.Msg != "" {
			if format := detectFormatFromArgs(args); isEventFormat(format) {
				writeCLIError(stdout, format, args, ee.Kind, categoryByExitCode(ee.Code), ee.Msg, ee.Code)
			} else {
				fmt.Fprintln(stderr, ee.Msg)
			}
		}
		return ee.Code
	}
	return ExitOK
}

func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &commonFlags{}
	root := &cobra.Command{
		Use:           "rwc [files...]",
		Short:         "Print byte, character, word and newline counts for files",
		Long:          rootLongHelp(),
		Example:       rootExampleHelp(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.ShowVersion {
				printVersion(stdout)
				return nil
			}
			setupLogger(stderr, flags.Debug)
			return runCount(cmd, stdin, stdout, flags, args)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	bindCommon(root, flags)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(stdout)
		},
	}
	root.AddCommand(versionCmd)
	return root
}

func bindCommon(cmd *cobra.Command, flags *commonFlags) {
	f := cmd.Flags()
	f.BoolVarP(&flags.Bytes, "bytes", "b", false, "print byte counts")
	f.BoolVarP(&flags.Chars, "chars", "c", false, "print UTF-8 character counts")
	f.BoolVarP(&flags.Words, "words", "w", false, "print word counts (runs of non-whitespace delimited by ASCII whitespace)")
	f.BoolVarP(&flags.Lines, "lines", "l", false, "print newline counts")
	f.BoolVar(&flags.ShowTotals, "show-totals", false, "add a row with the totals of every count")
	f.StringVar(&flags.Format, "format", output.FormatTable, "output format: table/csv/json/ndjson")
	f.StringVar(&flags.Files0From, "files0-from", "", "read NUL separated paths from this file; - reads NUL or newline separated paths from standard input")
	f.IntVar(&flags.Jobs, "jobs", app.DefaultJobs(), "number of inputs counted concurrently (default min(8, CPU cores))")
	f.StringVar(&flags.Config, "config", "", "YAML config file with default options")
	f.StringArrayVar(&flags.Exclude, "exclude", nil, "skip inputs matching this glob (repeatable, e.g. '**/*.log')")
	f.BoolVar(&flags.Debug, "debug", false, "enable debug logging on stderr")
	f.BoolVarP(&flags.ShowVersion, "version", "v", false, "print version information")
	_ = f.MarkHidden("debug")
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func runCount(cmd *cobra.Command, stdin io.Reader, stdout io.Writer, flags *commonFlags, args []string) error {
	cfg, err := config.Resolve(flags.Config)
	if err != nil {
		return &ExitError{Code: ExitConfig, Kind: "config_invalid", Msg: err.Error()}
	}
	opts, err := resolveOptions(cmd, flags, cfg, args)
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: ExitInternal, Kind: "cwd_failed", Msg: "cannot read the current directory"}
	}
	opts.CWD = cwd
	if len(args) == 0 && opts.Files0From == "" && isTerminal(stdin) {
		slog.Debug("reading standard input from a terminal; end input with Ctrl-D")
	}

	res, err := app.Run(opts, stdin)
	if err != nil {
		var (
			argErr   *app.ArgErr
			cfgErr   *app.ConfigErr
			inputErr *app.InputErr
		)
		switch {
		case errors.As(err, &argErr):
			return &ExitError{Code: ExitArg, Kind: "files0_from_conflict", Msg: err.Error()}
		case errors.As(err, &cfgErr):
			return &ExitError{Code: ExitConfig, Kind: "config_invalid", Msg: err.Error()}
		case errors.As(err, &inputErr):
			return &ExitError{Code: ExitInput, Kind: "path_list_invalid", Msg: err.Error()}
		default:
			return &ExitError{Code: ExitInternal, Msg: err.Error()}
		}
	}
	slog.Debug("count finished", "inputs", res.Summary.TotalInputs, "errors", res.Summary.Errors, "excluded", res.Summary.Excluded)

	if werr := output.Write(stdout, opts.Format, res); werr != nil {
		return &ExitError{Code: ExitInternal, Kind: "output_write_failed", Msg: fmt.Sprintf("write output: %v", werr)}
	}
	if code := res.ExitCode(); code != ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}

// resolveOptions layers flags over the config file and environment. Metric
// flags replace the configured metrics as a group.
func resolveOptions(cmd *cobra.Command, flags *commonFlags, cfg config.Config, args []string) (app.Options, error) {
	changed := cmd.Flags().Changed
	opts := app.Options{
		Selection:  count.Selection{Bytes: flags.Bytes, Chars: flags.Chars, Words: flags.Words, Lines: flags.Lines},
		ShowTotals: flags.ShowTotals,
		Format:     flags.Format,
		Jobs:       flags.Jobs,
		Files0From: flags.Files0From,
		Paths:      args,
		Version:    Version,
		Args:       os.Args[1:],
	}
	if opts.Selection.IsZero() {
		opts.Selection = cfg.Selection()
	}
	if !changed("show-totals") && cfg.ShowTotals != nil {
		opts.ShowTotals = *cfg.ShowTotals
	}
	if !changed("format") && cfg.Format != "" {
		opts.Format = cfg.Format
	}
	if !changed("jobs") && cfg.Jobs != nil {
		opts.Jobs = *cfg.Jobs
	}
	if err := output.ValidateFormat(opts.Format); err != nil {
		return opts, &ExitError{Code: ExitArg, Kind: "invalid_output_format", Msg: err.Error()}
	}
	if err := scan.ValidatePatterns(flags.Exclude); err != nil {
		return opts, &ExitError{Code: ExitArg, Kind: "invalid_exclude_pattern", Msg: err.Error()}
	}
	opts.ExcludePatterns = append(append([]string{}, cfg.ExcludePatterns...), flags.Exclude...)
	return opts.Normalize(), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

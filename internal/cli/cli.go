package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/computedgen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
// getenv supplies $GOFILE, which go generate sets to the file holding the
// directive.
func Parse(args []string, output io.Writer, getenv func(string) string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("computedgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
computedgen - generates accessors and memoized computed fields for Go structs.

Usage:
  computedgen [options] [PATH...]

Arguments:
  PATH
    A .go or .hcl file, a directory, or a glob such as ./**/*.go.
    Defaults to $GOFILE under go generate, otherwise the current directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	typeFlag := flagSet.String("type", "", "Comma-separated list of type names to generate for. Default: every annotated struct.")
	suffixFlag := flagSet.String("suffix", app.DefaultSuffix, "Suffix replacing the input's extension to name the output file.")
	constructorFlag := flagSet.Bool("constructor", false, "Also generate a New<Type> constructor for every struct.")
	checkFlag := flagSet.Bool("check", false, "Report outputs that are out of date and write nothing.")
	watchFlag := flagSet.Bool("watch", false, "Keep running and regenerate when inputs change.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := flagSet.Args()
	if len(paths) == 0 {
		if gofile := getenv("GOFILE"); gofile != "" {
			paths = []string{gofile}
		} else {
			paths = []string{"."}
		}
	}
	slog.Debug("Input paths determined.", "paths", paths)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Paths:       paths,
		Types:       splitList(*typeFlag),
		Suffix:      *suffixFlag,
		Constructor: *constructorFlag,
		Check:       *checkFlag,
		Watch:       *watchFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Package cli implements the shaderstage command: flag parsing, recipe
// loading and report output.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the configuration, or
// true when the program should exit cleanly (help was requested).
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	fs := flag.NewFlagSet("shaderstage", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
shaderstage - build shaders from typed or recorded build sequences.

Usage:
  shaderstage [options] [RECIPE...]

Arguments:
  RECIPE
    A .yaml, .yml or .hcl recipe file. Without recipes the built-in
    sample shaders are built.

Options:
`)
		fs.PrintDefaults()
	}

	vars := map[string]string{}
	fs.Func("var", "Set an HCL recipe variable as `name=value`. Repeatable.", func(s string) error {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return fmt.Errorf("expected name=value, got %q", s)
		}
		vars[name] = value
		return nil
	})
	outputFlag := fs.String("output", "yaml", "Report format. Options: 'yaml' or 'json'.")
	graphFlag := fs.Bool("graph", false, "Print the build progress machine as Graphviz DOT and exit.")
	logLevelFlag := fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg, err := NewConfig(Config{
		RecipePaths: fs.Args(),
		Vars:        vars,
		Output:      strings.ToLower(*outputFlag),
		Graph:       *graphFlag,
		LogLevel:    strings.ToLower(*logLevelFlag),
		LogFormat:   strings.ToLower(*logFormatFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/orfile/internal/app"
	"github.com/specialistvlad/orfile/internal/selection"
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

type globalFlags struct {
	logFormat *string
	logLevel  *string
}

func registerGlobalFlags(fs *flag.FlagSet) globalFlags {
	return globalFlags{
		logFormat: fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'."),
		logLevel:  fs.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'."),
	}
}

func (g globalFlags) validate() (format, level string, err error) {
	format = strings.ToLower(*g.logFormat)
	if format != "text" && format != "json" {
		return "", "", &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	level = strings.ToLower(*g.logLevel)
	switch level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return "", "", &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return format, level, nil
}

// Parse processes the arguments of cmd/tool: global options, then the command
// name and its own arguments. It returns a populated Config, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("tool", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tool - layered configuration for command arguments.

Usage:
  tool [options] COMMAND where [flags]
  tool [options] COMMAND using [--args-path FILE] [-- --key value ...]
  tool help

Options:
`)
		flagSet.PrintDefaults()
	}
	global := registerGlobalFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format, level, err := global.validate()
	if err != nil {
		return nil, false, err
	}

	config, err := app.NewConfig(app.Config{
		LogFormat: format,
		LogLevel:  level,
		Command:   flagSet.Arg(0),
		Args:      flagSet.Args()[1:],
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", config.Command)
	return config, false, nil
}

// ParseSelect processes the arguments of cmd/select-tool: global options and
// one switch per selection of sel, then the namespaced selection arguments.
func ParseSelect(args []string, output io.Writer, sel *selection.Selector) (*app.Config, bool, error) {
	slog.Debug("CLI selection parser started.")
	flagSet := flag.NewFlagSet("select-tool", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
select-tool - run several operations from one command line.

Usage:
  select-tool [options] --NAME [--NAME ...] [--] --NAME.FLAG [VALUE] ...

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintln(output)
		sel.Usage(output)
	}
	global := registerGlobalFlags(flagSet)
	sel.Register(flagSet)

	head, extra := splitNamespaced(args, sel.Flags())
	if err := flagSet.Parse(head); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	enabled := sel.Enabled()
	if len(enabled) == 0 {
		slog.Debug("No selection enabled, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format, level, err := global.validate()
	if err != nil {
		return nil, false, err
	}

	config, err := app.NewConfig(app.Config{
		LogFormat:  format,
		LogLevel:   level,
		Select:     true,
		Selections: enabled,
		Args:       append(flagSet.Args(), extra...),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI selection parser finished successfully.", "selections", enabled)
	return config, false, nil
}

// splitNamespaced cuts args before the first token addressed to one of the
// selections, e.g. "--add.left", so the global flag set never sees it.
func splitNamespaced(args []string, flags []string) (head, extra []string) {
	for i, arg := range args {
		if arg == "--" {
			return args, nil
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		for _, f := range flags {
			if strings.HasPrefix(name, f+".") {
				return args[:i:i], args[i:]
			}
		}
	}
	return args, nil
}

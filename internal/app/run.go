package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/orfile/internal/ctxlog"
)

var (
	// ErrUnknownCommand is returned by Run for a command nobody registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArguments is returned when a command is given no arguments.
	ErrMissingArguments = errors.New("missing arguments")
)

// Run executes the configured command or selections.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var err error
	if a.config.Select {
		err = a.runSelections(ctx)
	} else {
		err = a.runCommand(ctx)
	}

	a.logger.Debug("App.Run method finished.", "error", err)
	return err
}

func (a *App) runCommand(ctx context.Context) error {
	name := a.config.Command
	if name == "help" {
		a.PrintCommands(a.outW)
		return nil
	}

	cmd, ok := a.registry.Command(name)
	if !ok {
		return fmt.Errorf("%w '%s', available: %s", ErrUnknownCommand, name, strings.Join(a.registry.CommandNames(), ", "))
	}

	args := a.config.Args
	if len(args) == 0 || isHelp(args[0]) || (len(args) == 2 && isHelp(args[1])) {
		if cmd.Usage != nil {
			cmd.Usage(a.outW)
		}
		if len(args) == 0 {
			return fmt.Errorf("%s: %w", name, ErrMissingArguments)
		}
		return nil
	}

	a.logger.Debug("Dispatching command.", "command", name, "args", args)
	return cmd.Run(ctx, args, a.outW)
}

func (a *App) runSelections(ctx context.Context) error {
	selections, err := a.registry.Selector().Select(ctx, a.config.Selections, a.config.Args)
	if err != nil {
		return err
	}

	for _, name := range selections.Names() {
		target, _ := selections.Get(name)
		entry, _ := a.registry.Selection(name)
		a.logger.Debug("Running selection.", "selection", name)
		if err := entry.Run(ctx, target, a.outW); err != nil {
			return err
		}
	}
	return nil
}

func isHelp(arg string) bool {
	switch arg {
	case "-h", "-help", "--help":
		return true
	}
	return false
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/orfile/internal/app"
	"github.com/specialistvlad/orfile/internal/cli"
	"github.com/specialistvlad/orfile/internal/registry"
)

// main is the entrypoint for the select-tool binary.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW, errW io.Writer, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	// The selection switches must exist before the command line is parsed.
	reg := registry.New()
	for _, mod := range app.CoreModules() {
		mod.Register(reg)
	}

	appConfig, shouldExit, err := cli.ParseSelect(args, outW, reg.Selector())
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	selectApp := app.NewApp(outW, errW, appConfig)
	return selectApp.Run(context.Background())
}

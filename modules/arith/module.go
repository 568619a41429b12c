package arith

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/orfile/internal/config"
	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/specialistvlad/orfile/internal/hcl"
	"github.com/specialistvlad/orfile/internal/orfile"
	"github.com/specialistvlad/orfile/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Environ replaces os.Environ for the "using" mode. Nil means os.Environ.
	Environ func() []string
}

func (m *Module) resolver() *config.Resolver {
	var opts []config.Option
	if m.Environ != nil {
		opts = append(opts, config.WithEnviron(m.Environ))
	}
	return config.NewResolver(hcl.NewLoader(), hcl.NewConverter(), opts...)
}

// Register registers every arithmetic operation both as a command and as a
// selection.
func (m *Module) Register(r *registry.Registry) {
	res := m.resolver()

	registerOp(r, res, "add", "Add two unsigned integers.", Add)
	registerOp(r, res, "multiply", "Multiply two unsigned integers.", Multiply)
	registerOp(r, res, "divide", "Divide two numbers.", Divide)
	registerOp(r, res, "kebab-divide", "Divide two numbers, registered under a kebab-case name.", Divide)
	registerOp(r, res, "add-generic", "Add two integers or decimals given as text.", AddGeneric)
}

// invocation is the command form of an operation. The operands form the
// config group; Quiet is a plain flag in both modes.
type invocation[T any] struct {
	Args  T    `orfile:"config"`
	Quiet bool `flag:"quiet" flagUsage:"print only the result"`
}

func registerOp[T any, R any](r *registry.Registry, res *config.Resolver, name, desc string, fn func(*T) (R, error)) {
	cmd := orfile.New[invocation[T]](name, res)

	r.RegisterCommand(name, &registry.RegisteredCommand{
		Description: desc,
		NewInput:    func() any { return new(invocation[T]) },
		Usage:       cmd.Usage,
		Run: func(ctx context.Context, args []string, out io.Writer) error {
			input, err := cmd.Parse(ctx, args)
			if err != nil {
				return err
			}
			return apply(ctx, name, &input.Args, input.Quiet, out, fn)
		},
	})

	r.RegisterSelection(name, &registry.RegisteredSelection{
		Description: desc,
		NewInput:    func() any { return new(T) },
		Run: func(ctx context.Context, input any, out io.Writer) error {
			typed, ok := input.(*T)
			if !ok {
				return fmt.Errorf("%s: unexpected input type %T", name, input)
			}
			return apply(ctx, name, typed, false, out, fn)
		},
	})
}

func apply[T any, R any](ctx context.Context, name string, input *T, quiet bool, out io.Writer, fn func(*T) (R, error)) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running operation.", "operation", name, "input", input)

	result, err := fn(input)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if quiet {
		_, err = fmt.Fprintf(out, "%v\n", result)
		return err
	}
	_, err = fmt.Fprintf(out, "%s: %v\n", name, result)
	return err
}

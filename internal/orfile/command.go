package orfile

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	flago "github.com/cardinalby/go-struct-flags"
	"github.com/specialistvlad/orfile/internal/config"
	"github.com/specialistvlad/orfile/internal/ctxlog"
)

const (
	ModeWhere = "where"
	ModeUsing = "using"
)

// ErrUnknownMode is returned when the first argument is neither "where" nor
// "using".
var ErrUnknownMode = errors.New("expected 'where' or 'using'")

// Command parses a T either from explicit flags or from layered sources.
//
// Struct fields of T tagged `orfile:"config"` are config groups. In "using"
// mode each group gets its own "--<field>-path" flag and is resolved from
// the environment, its file and the trailing pairs, while the remaining
// flag fields of T are still parsed as flags. A T without config groups is
// treated as a single group, with "--args-path" as its file flag.
type Command[T any] struct {
	name       string
	configName string
	prefix     string
	resolver   *config.Resolver
	groups     []ConfigGroup
}

// Option configures a Command.
type Option func(*settings)

type settings struct {
	configName string
	prefix     string
}

// WithConfigName sets the name of the config file flag, "--<name>-path",
// for a T without config groups. The default is "args".
func WithConfigName(name string) Option {
	return func(s *settings) { s.configName = name }
}

// WithEnvPrefix overrides the environment prefix derived from the command
// name.
func WithEnvPrefix(prefix string) Option {
	return func(s *settings) { s.prefix = prefix }
}

// New creates a command named name (e.g. "add" or "KebabDivide"). The
// environment prefix is config.EnvPrefix(name) unless overridden.
func New[T any](name string, resolver *config.Resolver, opts ...Option) *Command[T] {
	s := settings{configName: "args", prefix: config.EnvPrefix(name)}
	for _, opt := range opts {
		opt(&s)
	}
	return &Command[T]{
		name:       name,
		configName: s.configName,
		prefix:     s.prefix,
		resolver:   resolver,
		groups:     ConfigGroups(reflect.TypeFor[T]()),
	}
}

// Name returns the command name.
func (c *Command[T]) Name() string { return c.name }

// EnvPrefix returns the environment variable prefix without the trailing
// underscore.
func (c *Command[T]) EnvPrefix() string { return c.prefix }

// PathFlags returns the config file flags of "using" mode, one per group.
func (c *Command[T]) PathFlags() []string {
	if len(c.groups) == 0 {
		return []string{c.configName + "-path"}
	}
	names := make([]string, len(c.groups))
	for i, g := range c.groups {
		names[i] = g.PathFlag
	}
	return names
}

// Parse reads the mode from args[0] and builds a T from the rest.
func (c *Command[T]) Parse(ctx context.Context, args []string) (*T, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: %w", c.name, ErrUnknownMode)
	}
	logger := ctxlog.FromContext(ctx).With("command", c.name, "mode", args[0])
	logger.Debug("Parsing command arguments.", "config_groups", len(c.groups))

	switch args[0] {
	case ModeWhere:
		return c.parseWhere(args[1:])
	case ModeUsing:
		return c.parseUsing(ctxlog.WithLogger(ctx, logger), args[1:])
	default:
		return nil, fmt.Errorf("%s: %w, got '%s'", c.name, ErrUnknownMode, args[0])
	}
}

// whereFlags registers every flag field of target, config groups included.
func (c *Command[T]) whereFlags(fs *flago.FlagSet, target *T) error {
	if err := fs.StructVar(target); err != nil {
		return fmt.Errorf("%s: invalid argument struct: %w", c.name, err)
	}
	for _, g := range c.groups {
		if err := fs.StructVar(g.addr(target)); err != nil {
			return fmt.Errorf("%s: invalid config group %s: %w", c.name, g.Field, err)
		}
	}
	return nil
}

func (c *Command[T]) parseWhere(args []string) (*T, error) {
	target := new(T)
	fs := flago.NewFlagSet(c.name+" "+ModeWhere, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := c.whereFlags(fs, target); err != nil {
		return nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.name, ModeWhere, err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("%s %s: unexpected arguments %q", c.name, ModeWhere, rest)
	}
	return target, nil
}

// usingFlags registers the path flags and, when T has config groups, the
// flag fields outside them.
func (c *Command[T]) usingFlags(fs *flago.FlagSet, target *T) ([]*string, error) {
	if len(c.groups) > 0 {
		if err := fs.StructVar(target); err != nil {
			return nil, fmt.Errorf("%s: invalid argument struct: %w", c.name, err)
		}
	}
	names := c.PathFlags()
	paths := make([]*string, len(names))
	for i, name := range names {
		paths[i] = fs.String(name, "", "Path to a JSON or HCL config file")
	}
	return paths, nil
}

func (c *Command[T]) parseUsing(ctx context.Context, args []string) (*T, error) {
	head, trailing := splitTrailing(args)

	target := new(T)
	fs := flago.NewFlagSet(c.name+" "+ModeUsing, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	paths, err := c.usingFlags(fs, target)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(head); err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.name, ModeUsing, err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("%s %s: unexpected arguments %q, free-form pairs go after '--'", c.name, ModeUsing, rest)
	}

	if len(c.groups) == 0 {
		return config.Load[T](ctx, c.resolver, config.Request{
			Prefix:   c.prefix,
			FilePath: *paths[0],
			Trailing: trailing,
		})
	}
	if err := c.resolveGroups(ctx, target, paths, trailing); err != nil {
		return nil, err
	}
	return target, nil
}

// resolveGroups fills every config group of target. All groups share the
// environment prefix and the trailing pairs, so a key is unknown only when
// no group declares it.
func (c *Command[T]) resolveGroups(ctx context.Context, target *T, paths []*string, trailing []string) error {
	schemas := make([]*config.Schema, len(c.groups))
	declared := make(map[string]bool)
	for i, g := range c.groups {
		schema, err := config.SchemaOf(g.addr(target))
		if err != nil {
			return &config.DeserializationError{Err: err}
		}
		for _, f := range schema.Fields() {
			declared[f.Name] = true
		}
		schemas[i] = schema
	}

	for i, g := range c.groups {
		res, err := c.resolver.Resolve(ctx, config.Request{
			Prefix:   c.prefix,
			FilePath: *paths[i],
			Trailing: trailing,
		})
		if err != nil {
			return err
		}
		for _, key := range res.Values.Keys() {
			if !declared[key] {
				return &config.DeserializationError{Field: key, Err: config.ErrUnknownField}
			}
		}
		if err := c.resolver.Decode(ctx, res.Only(schemas[i]), g.addr(target)); err != nil {
			return fmt.Errorf("config group %s: %w", g.Field, err)
		}
		ctxlog.FromContext(ctx).Debug("Resolved config group.", "group", g.Field, "path", *paths[i])
	}
	return nil
}

// Usage writes both modes' flags to w.
func (c *Command[T]) Usage(w io.Writer) {
	fmt.Fprintf(w, "Usage of %s:\n", c.name)
	fmt.Fprintf(w, "  %s %s [flags]\n", c.name, ModeWhere)
	fs := flago.NewFlagSet(c.name, flag.ContinueOnError)
	fs.SetOutput(w)
	if err := c.whereFlags(fs, new(T)); err == nil {
		fs.FlagSet.PrintDefaults()
	}

	var files []string
	for _, name := range c.PathFlags() {
		files = append(files, fmt.Sprintf("[--%s FILE]", name))
	}
	fmt.Fprintf(w, "  %s %s %s [-- --key value ...]\n", c.name, ModeUsing, strings.Join(files, " "))
	if len(c.groups) > 0 {
		fs := flago.NewFlagSet(c.name, flag.ContinueOnError)
		fs.SetOutput(w)
		if err := fs.StructVar(new(T)); err == nil {
			fs.FlagSet.PrintDefaults()
		}
	}
	fmt.Fprintf(w, "    \tenvironment variables %s_<FIELD> are read first\n", c.prefix)
}

// splitTrailing separates args at the first "--". The separator is dropped.
func splitTrailing(args []string) (head, trailing []string) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil
	}
	return args[:i], args[i+1:]
}

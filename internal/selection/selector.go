package selection

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"

	flago "github.com/cardinalby/go-struct-flags"
	"github.com/iancoleman/strcase"
	"github.com/specialistvlad/orfile/internal/ctxlog"
)

// Style controls how a bound name turns into a selection flag.
type Style int

const (
	// StyleKebab rewrites names to kebab case: "kebab_divide" selects with
	// --kebab-divide and routes --kebab-divide.* tokens.
	StyleKebab Style = iota
	// StyleVerbatim uses names exactly as bound.
	StyleVerbatim
)

// Option configures a Selector.
type Option func(*Selector)

// WithStyle sets the naming style. The default is StyleKebab.
func WithStyle(style Style) Option {
	return func(s *Selector) { s.style = style }
}

type binding struct {
	name      string
	flag      string
	newTarget func() any
	enabled   bool
}

// Selector owns a set of selection flags, each bound to an argument struct,
// and routes namespaced trailing tokens to the structs of the enabled ones.
type Selector struct {
	style    Style
	bindings []*binding
	byFlag   map[string]*binding
}

// New creates an empty selector.
func New(opts ...Option) *Selector {
	s := &Selector{byFlag: make(map[string]*binding)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind adds a selection. newTarget must return a fresh pointer to a struct
// tagged for go-struct-flags; it is called once per Select. Binding two names
// that map to the same flag panics.
func (s *Selector) Bind(name string, newTarget func() any) *Selector {
	flagName := s.flagName(name)
	if _, exists := s.byFlag[flagName]; exists {
		panic(fmt.Sprintf("selection '%s' already bound", flagName))
	}
	b := &binding{name: name, flag: flagName, newTarget: newTarget}
	s.bindings = append(s.bindings, b)
	s.byFlag[flagName] = b
	return s
}

func (s *Selector) flagName(name string) string {
	if s.style == StyleVerbatim {
		return name
	}
	return strcase.ToKebab(name)
}

// Flags returns the selection flag names in bind order.
func (s *Selector) Flags() []string {
	names := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		names[i] = b.flag
	}
	return names
}

// Register adds one boolean switch per selection to fs.
func (s *Selector) Register(fs *flag.FlagSet) {
	for _, b := range s.bindings {
		fs.BoolVar(&b.enabled, b.flag, false, fmt.Sprintf("Enable the %s selection", b.flag))
	}
}

// Enabled returns the selections whose registered switch was set, in bind order.
func (s *Selector) Enabled() []string {
	var names []string
	for _, b := range s.bindings {
		if b.enabled {
			names = append(names, b.flag)
		}
	}
	return names
}

// Select parses the tokens of extra addressed to each enabled selection into
// a fresh target. Every enabled selection is attempted; if any fails, the
// joined *SubcommandParseError values are returned and no selection is.
func (s *Selector) Select(ctx context.Context, enabled []string, extra []string) (*Selections, error) {
	logger := ctxlog.FromContext(ctx)

	result := newSelections()
	var errs []error
	for _, name := range enabled {
		b, ok := s.byFlag[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown selection '%s'", name))
			continue
		}
		if _, done := result.values[b.flag]; done {
			continue
		}

		args := Partition(extra, b.flag)
		logger.Debug("Routing selection arguments.", "selection", b.flag, "args", args)

		target, err := parseTarget(b, args)
		if err != nil {
			errs = append(errs, &SubcommandParseError{Flag: b.flag, Args: args, Err: err})
			continue
		}
		result.add(b.flag, target)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	logger.Debug("Selections parsed.", "selections", result.Names())
	return result, nil
}

func parseTarget(b *binding, args []string) (any, error) {
	target := b.newTarget()
	fs := flago.NewFlagSet(b.flag, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.StructVar(target); err != nil {
		return nil, fmt.Errorf("invalid target for selection '%s': %w", b.flag, err)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rest := fs.Args(); len(rest) > 0 && !hasFlagArgsField(target) {
		return nil, fmt.Errorf("unexpected arguments %q", rest)
	}
	return target, nil
}

// hasFlagArgsField reports whether the target collects positional arguments.
func hasFlagArgsField(target any) bool {
	rt := reflect.TypeOf(target)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Tag.Get("flagArgs") == "true" {
			return true
		}
	}
	return false
}

// Usage writes the help for every selection: its switch and the target's
// flags under their namespaced names.
func (s *Selector) Usage(w io.Writer) {
	for i, b := range s.bindings {
		fmt.Fprintf(w, "Selection (%d/%d): %s\n", i+1, len(s.bindings), b.flag)

		fs := flago.NewFlagSet(b.flag, flag.ContinueOnError)
		if err := fs.StructVar(b.newTarget()); err != nil {
			fmt.Fprintf(w, "  (invalid target: %v)\n", err)
			continue
		}
		fs.VisitAll(func(f *flag.Flag) {
			typeName, usage := flag.UnquoteUsage(f)
			line := fmt.Sprintf("  --%s.%s", b.flag, f.Name)
			if typeName != "" {
				line += " " + typeName
			}
			fmt.Fprintln(w, line)
			if usage != "" {
				fmt.Fprintf(w, "    \t%s\n", strings.ReplaceAll(usage, "\n", "\n    \t"))
			}
		})
	}
}

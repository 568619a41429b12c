// Package resolve provides the "resolve" command: it merges the layered
// sources for an arbitrary prefix, optionally checks the result against a
// schema file and prints it as JSON. It is the schema-driven counterpart of an orfile
// command, usable without a compiled argument struct.
package resolve

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	flago "github.com/cardinalby/go-struct-flags"
	"github.com/specialistvlad/orfile/internal/config"
	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/specialistvlad/orfile/internal/hcl"
	"github.com/specialistvlad/orfile/internal/registry"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Environ replaces os.Environ. Nil means os.Environ.
	Environ func() []string
}

// Args are the flags of the resolve command. Pairs after "--" land in Pairs.
type Args struct {
	Schema        string   `flag:"schema" flagUsage:"HCL schema file, e.g. left = number; without it the merged mapping is printed as is"`
	Prefix        string   `flag:"prefix" flagRequired:"true" flagUsage:"environment prefix, e.g. ADD"`
	File          string   `flag:"args-path" flagUsage:"JSON or HCL config file"`
	IgnoreUnknown bool     `flag:"ignore-unknown" flagUsage:"drop keys the schema does not declare"`
	Origins       bool     `flag:"origins" flagUsage:"also print the layer each key came from"`
	Pairs         []string `flagArgs:"true"`
}

// Register registers the resolve command.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("resolve", &registry.RegisteredCommand{
		Description: "Merge env, file and trailing pairs, optionally check them against a schema file, and print JSON.",
		Run:         m.run,
		Usage:       usage,
	})
}

func newFlagSet(w io.Writer) (*flago.FlagSet, *Args, error) {
	args := &Args{}
	fs := flago.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(w)
	if err := fs.StructVar(args); err != nil {
		return nil, nil, err
	}
	return fs, args, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage of resolve:")
	fmt.Fprintln(w, "  resolve --prefix NAME [--schema FILE] [--args-path FILE] [-- --key value ...]")
	fs, _, err := newFlagSet(w)
	if err != nil {
		return
	}
	fs.FlagSet.PrintDefaults()
}

func (m *Module) run(ctx context.Context, argv []string, out io.Writer) error {
	fs, args, err := newFlagSet(io.Discard)
	if err != nil {
		return err
	}
	if err := fs.Parse(argv); err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	logger := ctxlog.FromContext(ctx).With("prefix", args.Prefix)

	var schema *config.Schema
	if args.Schema != "" {
		if schema, err = hcl.LoadSchema(ctx, args.Schema); err != nil {
			return err
		}
	}

	environ := m.Environ
	if environ == nil {
		environ = os.Environ
	}
	converter := hcl.NewConverter()
	resolver := config.NewResolver(hcl.NewLoader(), converter, config.WithEnviron(environ))

	res, err := resolver.Resolve(ctx, config.Request{
		Prefix:   args.Prefix,
		FilePath: args.File,
		Trailing: args.Pairs,
	})
	if err != nil {
		return err
	}

	values := res.Values.Object()
	if schema != nil {
		if values, err = schema.Conform(res.Values, args.IgnoreUnknown); err != nil {
			return err
		}
		logger.Debug("Resolved values conform to schema.", "fields", len(schema.Fields()))
	}

	doc := values
	if args.Origins {
		origins := make(map[string]string, len(res.Origins))
		for key, layer := range res.Origins {
			if schema != nil {
				if _, declared := schema.Lookup(key); !declared {
					continue
				}
			}
			origins[key] = layer.String()
		}
		originsVal, err := converter.ToCtyValue(origins)
		if err != nil {
			return err
		}
		doc = cty.ObjectVal(map[string]cty.Value{"values": values, "origins": originsVal})
	}

	buf, err := ctyjson.Marshal(doc, doc.Type())
	if err != nil {
		return fmt.Errorf("resolve: encoding result: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", buf)
	return err
}

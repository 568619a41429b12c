package config

import (
	"context"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/specialistvlad/orfile/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Request describes one resolve call.
type Request struct {
	// Prefix is the upper-snake struct prefix without the trailing
	// underscore, e.g. "ADD" or "KEBAB_DIVIDE". See EnvPrefix.
	Prefix string
	// FilePath is the optional config file. Empty means no file layer.
	FilePath string
	// Trailing holds the free-form `--key value` tokens.
	Trailing []string
}

// Resolver merges environment variables, an optional config file and trailing
// command-line pairs into one Mapping. It holds no per-call state and is safe
// for concurrent use as long as its Loader and Converter are.
type Resolver struct {
	loader    Loader
	converter Converter
	environ   func() []string
	pipeline  value.Pipeline
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(environ func() []string) Option {
	return func(r *Resolver) { r.environ = environ }
}

// WithPipeline replaces value.DefaultPipeline for trailing pair values.
func WithPipeline(p value.Pipeline) Option {
	return func(r *Resolver) { r.pipeline = p }
}

// NewResolver creates a resolver. loader may be nil when no request will
// carry a file path; converter may be nil when only Resolve is used.
func NewResolver(loader Loader, converter Converter, opts ...Option) *Resolver {
	r := &Resolver{
		loader:    loader,
		converter: converter,
		environ:   os.Environ,
		pipeline:  value.DefaultPipeline,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnvPrefix converts a Go type name into its environment variable prefix:
// "Add" becomes "ADD", "KebabDivide" becomes "KEBAB_DIVIDE".
func EnvPrefix(typeName string) string {
	return strcase.ToScreamingSnake(typeName)
}

// NormalizeFlagKey turns a trailing flag token into a mapping key: leading
// dashes are stripped, dashes become underscores and the result is
// lower-cased.
func NormalizeFlagKey(flag string) string {
	key := strings.TrimLeft(flag, "-")
	key = strings.ReplaceAll(key, "-", "_")
	return strings.ToLower(key)
}

// Resolve merges the three layers. Later layers win on key collisions:
// trailing pairs over file over environment.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("prefix", req.Prefix)
	logger.Debug("Resolving layered configuration.")

	res := newResult()
	r.mergeEnv(ctx, res, req.Prefix)

	if req.FilePath != "" {
		if r.loader == nil {
			return nil, ErrNoLoader
		}
		fileValues, err := r.loader.Load(ctx, req.FilePath)
		if err != nil {
			return nil, err
		}
		for _, key := range fileValues.Keys() {
			res.set(LayerFile, key, fileValues[key])
		}
		logger.Debug("Merged config file layer.", "path", req.FilePath, "keys", len(fileValues))
	}

	r.mergeArgs(ctx, res, req.Trailing)

	logger.Debug("Layered configuration resolved.", "keys", res.Values.Keys())
	return res, nil
}

func (r *Resolver) mergeEnv(ctx context.Context, res *Result, prefix string) {
	logger := ctxlog.FromContext(ctx)
	envPrefix := prefix + "_"
	count := 0
	for _, kv := range r.environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		suffix, found := strings.CutPrefix(name, envPrefix)
		if !found || suffix == "" {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(suffix), "__", "_")
		res.set(LayerEnv, key, cty.StringVal(val))
		count++
	}
	logger.Debug("Merged environment layer.", "env_prefix", envPrefix, "vars", count)
}

func (r *Resolver) mergeArgs(ctx context.Context, res *Result, trailing []string) {
	logger := ctxlog.FromContext(ctx)
	for i := 0; i+1 < len(trailing); i += 2 {
		key := NormalizeFlagKey(trailing[i])
		v, stage := r.pipeline.CoerceWithStage(trailing[i+1])
		res.set(LayerArgs, key, v)
		logger.Debug("Merged trailing pair.", "key", key, "stage", stage)
	}
	if len(trailing)%2 == 1 {
		logger.Debug("Dropping unpaired trailing token.", "token", trailing[len(trailing)-1])
	}
}

// Decode binds a resolved result to target through the resolver's Converter.
func (r *Resolver) Decode(ctx context.Context, res *Result, target any) error {
	if r.converter == nil {
		return &DeserializationError{Err: errNoConverter}
	}
	return r.converter.Decode(ctx, res.Values, target)
}

// Load resolves req and decodes the result into a new T.
func Load[T any](ctx context.Context, r *Resolver, req Request) (*T, error) {
	res, err := r.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	target := new(T)
	if err := r.Decode(ctx, res, target); err != nil {
		return nil, err
	}
	return target, nil
}

package hcl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/orfile/internal/config"
	"github.com/specialistvlad/orfile/internal/ctxlog"
	"github.com/specialistvlad/orfile/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-backed implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderEnviron replaces os.Environ as the source of the `env` variable
// visible to native-syntax config files.
func WithLoaderEnviron(environ func() []string) LoaderOption {
	return func(l *Loader) { l.environ = environ }
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{environ: os.Environ}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file at path and returns its top-level attributes. Files
// ending in .json are parsed as JSON and files ending in .hcl as HCL native
// syntax. Any other file is JSON when its first non-blank byte is '{', HCL
// otherwise.
// Native files may reference environment variables as `env.NAME`; JSON files
// are taken literally.
//
// When path is a directory, every .json and .hcl file below it is loaded in
// lexical path order and merged, later files overriding earlier ones.
func (l *Loader) Load(ctx context.Context, path string) (config.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, &config.IoError{Path: path, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &config.IoError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return l.loadFile(ctx, path)
	}

	files, err := fsutil.FindFilesByExtension(path, ".json", ".hcl")
	if err != nil {
		return nil, &config.IoError{Path: path, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("Loading config directory.", "path", path, "files", files)

	merged := make(config.Mapping)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, &config.IoError{Path: file, Err: err}
		}
		values, err := l.loadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		for key, val := range values {
			merged[key] = val
		}
	}
	return merged, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) (config.Mapping, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &config.IoError{Path: path, Err: err}
	}
	logger.Debug("Read config file.", "bytes", len(src))

	parser := hclparse.NewParser()
	var (
		file    *hcl.File
		diags   hcl.Diagnostics
		evalCtx *hcl.EvalContext
	)
	if isJSON(path, src) {
		file, diags = parser.ParseJSON(src, path)
	} else {
		file, diags = parser.ParseHCL(src, path)
		evalCtx = l.buildEvalContext(ctx)
	}
	if diags.HasErrors() {
		return nil, &config.ParseError{Path: path, Err: diags}
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, &config.ParseError{Path: path, Err: diags}
	}

	out := make(config.Mapping, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, &config.ParseError{Path: path, Err: fmt.Errorf("attribute %q: %w", name, diags)}
		}
		out[name] = val
	}
	logger.Debug("Parsed config file.", "keys", out.Keys())
	return out, nil
}

func isJSON(path string, src []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return true
	case ".hcl":
		return false
	}
	trimmed := bytes.TrimLeft(src, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// buildEvalContext exposes the environment as the `env` object.
func (l *Loader) buildEvalContext(ctx context.Context) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	env := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(val)
	}
	if len(env) > 0 {
		vars["env"] = cty.ObjectVal(env)
	} else {
		vars["env"] = cty.EmptyObjectVal
	}
	ctxlog.FromContext(ctx).Debug("Built HCL evaluation context.", "env_vars", len(env))
	return &hcl.EvalContext{Variables: vars}
}

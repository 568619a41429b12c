package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/specialistvlad/orfile/internal/selection"
)

// Module is the interface that all modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredCommand is a named entry point of cmd/tool.
type RegisteredCommand struct {
	Description string
	// NewInput returns a fresh argument struct. Used for validation and help.
	NewInput func() any
	Run      func(ctx context.Context, args []string, out io.Writer) error
	Usage    func(w io.Writer)
}

// RegisteredSelection is a target of cmd/select-tool.
type RegisteredSelection struct {
	Description string
	NewInput    func() any
	Run         func(ctx context.Context, input any, out io.Writer) error
}

// Registry holds the commands and selections of a single application instance.
type Registry struct {
	commands       map[string]*RegisteredCommand
	selections     map[string]*RegisteredSelection
	selectionOrder []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		commands:   make(map[string]*RegisteredCommand),
		selections: make(map[string]*RegisteredSelection),
	}
}

// RegisterCommand registers a command under name.
func (r *Registry) RegisterCommand(name string, cmd *RegisteredCommand) {
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("command with name '%s' already registered", name))
	}
	slog.Debug("Registering command.", "name", name)
	r.commands[name] = cmd
}

// RegisterSelection registers a selection target under name. Names are bound
// to the selector in registration order.
func (r *Registry) RegisterSelection(name string, sel *RegisteredSelection) {
	if _, exists := r.selections[name]; exists {
		panic(fmt.Sprintf("selection with name '%s' already registered", name))
	}
	slog.Debug("Registering selection.", "name", name)
	r.selections[name] = sel
	r.selectionOrder = append(r.selectionOrder, name)
}

// Command returns the command registered under name.
func (r *Registry) Command(name string) (*RegisteredCommand, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// CommandNames returns all command names, sorted.
func (r *Registry) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Selection returns the selection registered under its selector flag name.
func (r *Registry) Selection(name string) (*RegisteredSelection, bool) {
	sel, ok := r.selections[name]
	return sel, ok
}

// Selector builds a selector with one binding per registered selection.
// Selection names are registered in their final flag form, so the default
// kebab style leaves them unchanged.
func (r *Registry) Selector(opts ...selection.Option) *selection.Selector {
	s := selection.New(opts...)
	for _, name := range r.selectionOrder {
		s.Bind(name, r.selections[name].NewInput)
	}
	return s
}

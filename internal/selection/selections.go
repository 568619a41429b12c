package selection

import "fmt"

// Selections holds the parsed target of every enabled selection, keyed by
// selection flag name. A disabled selection is absent.
type Selections struct {
	values map[string]any
	order  []string
}

func newSelections() *Selections {
	return &Selections{values: make(map[string]any)}
}

func (s *Selections) add(name string, target any) {
	s.values[name] = target
	s.order = append(s.order, name)
}

// Get returns the parsed target for name.
func (s *Selections) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the selected names in the order they were enabled.
func (s *Selections) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of selections.
func (s *Selections) Len() int { return len(s.order) }

// As returns the target for name as *T. ok is false when the selection is
// absent or bound to another type.
func As[T any](s *Selections, name string) (*T, bool) {
	v, ok := s.Get(name)
	if !ok {
		return nil, false
	}
	t, ok := v.(*T)
	return t, ok
}

// SubcommandParseError reports tokens routed to a selection that its target
// struct could not parse.
type SubcommandParseError struct {
	Flag string
	Args []string
	Err  error
}

func (e *SubcommandParseError) Error() string {
	return fmt.Sprintf("failed to parse subcommand %s: %v", e.Flag, e.Err)
}

func (e *SubcommandParseError) Unwrap() error { return e.Err }

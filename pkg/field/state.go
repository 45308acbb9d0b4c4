package field

import "fmt"

// State is the validation state of a field.
type State int

const (
	// StateClean means never touched or currently valid; nothing is flagged.
	StateClean State = iota
	// StateInvalidHidden means the value fails its pattern but the
	// explanation is hidden.
	StateInvalidHidden
	// StateInvalidShown means the value fails its pattern and the explanation
	// is visible.
	StateInvalidShown
)

var stateNames = map[State]string{
	StateClean:         "clean",
	StateInvalidHidden: "invalid-hidden",
	StateInvalidShown:  "invalid-shown",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Invalid reports whether the state flags the value as failing its pattern.
func (s State) Invalid() bool {
	return s == StateInvalidHidden || s == StateInvalidShown
}

// MarshalText renders the state name, used by the JSON renderer and the HTTP
// component.
func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("field: unknown state %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("field: unknown state %q", string(text))
}

// BlurResult tells the host how to treat a blur.
type BlurResult struct {
	// Refocus asks the host to give focus back to the field.
	Refocus bool
}

// Widget is the contract between a field and its hosting surface.
type Widget interface {
	Kind() Kind
	Edit(value string)
	Blur() BlurResult
	Focus()
	Value() string
	State() State
	Close()
}

// Kind identifies the widget flavour.
type Kind string

const (
	KindNumber Kind = "number"
	KindEmail  Kind = "email"
)

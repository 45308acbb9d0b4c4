package render

import (
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
)

// View is a render-ready snapshot of a widget joined with its spec.
type View struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Label        string             `json:"label"`
	Kind         field.Kind         `json:"kind"`
	InputMode    string             `json:"input_mode,omitempty"`
	Pattern      string             `json:"pattern,omitempty"`
	HTMLPattern  string             `json:"-"`
	Value        string             `json:"value"`
	State        field.State        `json:"state"`
	Presentation field.Presentation `json:"-"`
	Explanation  string             `json:"explanation,omitempty"`
	DelayMs      int                `json:"delay_ms,omitempty"`
	AllowEmpty   bool               `json:"allow_empty,omitempty"`
}

// NewView snapshots widget w using the labels and markup from spec.
func NewView(spec fieldspec.Spec, w field.Widget) View {
	spec = spec.WithDefaults()
	view := View{
		ID:          spec.Name + "-input-field",
		Name:        spec.Name,
		Label:       spec.Label,
		Kind:        spec.Kind,
		InputMode:   spec.InputMode,
		Explanation: spec.Explanation,
		AllowEmpty:  spec.AllowEmpty,
	}
	if p, err := spec.CompiledPattern(); err == nil {
		view.Pattern = p.Source()
		view.HTMLPattern = p.HTMLSource()
	}
	if spec.Kind == field.KindEmail {
		view.DelayMs = int(spec.Delay().Milliseconds())
	}
	if w != nil {
		view.Value = w.Value()
		view.State = w.State()
	}
	view.Presentation = field.Present(view.State)
	return view
}

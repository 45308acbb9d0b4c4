package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONRenderer emits field views as JSON for scripted hosts that draw the
// widgets themselves.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

type jsonField struct {
	View
	Style           string `json:"style"`
	ShowExplanation bool   `json:"show_explanation"`
}

type jsonPayload struct {
	Title  string      `json:"title,omitempty"`
	Fields []jsonField `json:"fields"`
}

func (JSONRenderer) Name() string {
	return "json"
}

func (JSONRenderer) ContentType() string {
	return "application/json; charset=utf-8"
}

func (JSONRenderer) Render(ctx context.Context, views []View, options RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload := jsonPayload{Title: options.Title, Fields: make([]jsonField, 0, len(views))}
	for _, view := range views {
		payload.Fields = append(payload.Fields, jsonField{
			View:            view,
			Style:           string(view.Presentation.Style),
			ShowExplanation: view.Presentation.ShowExplanation,
		})
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: encode json: %w", err)
	}
	return out, nil
}

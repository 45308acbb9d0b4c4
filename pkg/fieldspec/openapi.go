package fieldspec

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/pattern"
)

// ExtensionKey holds per-property overrides inside an OpenAPI schema:
//
//	x-formfield:
//	  kind: email
//	  delay_ms: 500
//	  input_mode: email
//	  explanation: "Use <em>name@host</em>"
//	  allow_empty: true
//	  order: 2
const ExtensionKey = "x-formfield"

// FromOpenAPI builds a document from the properties of a component schema.
// Properties that are neither numeric nor email-like are skipped unless the
// extension names a kind. When schemaName is empty and the document holds a
// single component schema, that schema is used.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string) (Document, error) {
	if len(data) == 0 {
		return Document{}, errors.New("fieldspec: openapi document is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return Document{}, fmt.Errorf("fieldspec: load openapi: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return Document{}, errors.New("fieldspec: openapi document has no component schemas")
	}

	ref, name, err := pickSchema(spec.Components.Schemas, schemaName)
	if err != nil {
		return Document{}, err
	}
	if ref == nil || ref.Value == nil {
		return Document{}, fmt.Errorf("fieldspec: schema %q is unresolved", name)
	}

	type ordered struct {
		spec  Spec
		order int
	}
	var collected []ordered
	for propName, propRef := range ref.Value.Properties {
		if propRef == nil || propRef.Value == nil {
			continue
		}
		s, order, ok := specFromSchema(propName, propRef.Value)
		if !ok {
			continue
		}
		collected = append(collected, ordered{spec: s, order: order})
	}
	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].order == collected[j].order {
			return collected[i].spec.Name < collected[j].spec.Name
		}
		return collected[i].order < collected[j].order
	})

	doc := Document{Fields: make([]Spec, 0, len(collected))}
	for _, entry := range collected {
		doc.Fields = append(doc.Fields, entry.spec.WithDefaults())
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("fieldspec: schema %q: %w", name, err)
	}
	return doc, nil
}

func pickSchema(schemas openapi3.Schemas, name string) (*openapi3.SchemaRef, string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		ref, ok := schemas[name]
		if !ok {
			return nil, name, fmt.Errorf("fieldspec: schema %q not found", name)
		}
		return ref, name, nil
	}
	if len(schemas) != 1 {
		return nil, "", errors.New("fieldspec: schema name is required when several component schemas exist")
	}
	for key, ref := range schemas {
		return ref, key, nil
	}
	return nil, "", nil
}

func specFromSchema(name string, schema *openapi3.Schema) (Spec, int, bool) {
	ext := extensionMap(schema.Extensions)
	s := Spec{
		Name:        name,
		Label:       strings.TrimSpace(schema.Title),
		Pattern:     schema.Pattern,
		Explanation: strings.TrimSpace(schema.Description),
	}

	if kind := stringValue(ext["kind"]); kind != "" {
		s.Kind = field.Kind(strings.ToLower(kind))
	} else {
		s.Kind = inferKind(schema)
	}
	if s.Kind == "" {
		return Spec{}, 0, false
	}

	if mode := stringValue(ext["input_mode"]); mode != "" {
		s.InputMode = mode
	}
	if explanation := stringValue(ext["explanation"]); explanation != "" {
		s.Explanation = explanation
	}
	if delay, ok := intValue(ext["delay_ms"]); ok {
		s.DelayMs = &delay
	}
	if allow, ok := ext["allow_empty"].(bool); ok {
		s.AllowEmpty = allow
	}
	order, _ := intValue(ext["order"])
	return s, order, true
}

func inferKind(schema *openapi3.Schema) field.Kind {
	if strings.EqualFold(schema.Format, "email") {
		return field.KindEmail
	}
	if schema.Type != nil && (schema.Type.Is(openapi3.TypeNumber) || schema.Type.Is(openapi3.TypeInteger)) {
		return field.KindNumber
	}
	if schema.Pattern == pattern.NumericSource {
		return field.KindNumber
	}
	return ""
}

func extensionMap(extensions map[string]any) map[string]any {
	if len(extensions) == 0 {
		return nil
	}
	raw, ok := extensions[ExtensionKey]
	if !ok {
		return nil
	}
	out, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return out
}

func stringValue(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func intValue(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		return int(typed), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

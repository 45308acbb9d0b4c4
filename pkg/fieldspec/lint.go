package fieldspec

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/pattern"
)

var knownExtensionKeys = map[string]struct{}{
	"kind":        {},
	"delay_ms":    {},
	"input_mode":  {},
	"explanation": {},
	"allow_empty": {},
	"order":       {},
}

// Violation is a problem found in an x-formfield extension.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// LintOpenAPI checks every component schema property carrying an
// x-formfield extension. Violations are sorted by location then message.
func LintOpenAPI(ctx context.Context, data []byte) ([]Violation, error) {
	if len(data) == 0 {
		return nil, errors.New("fieldspec: openapi document is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("fieldspec: load openapi: %w", err)
	}
	if spec.Components == nil {
		return nil, nil
	}

	var result []Violation
	for schemaName, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		for propName, propRef := range ref.Value.Properties {
			if propRef == nil || propRef.Value == nil {
				continue
			}
			location := strings.Join([]string{"components", "schemas", schemaName, "properties", propName}, ".")
			result = append(result, lintProperty(location, propRef.Value)...)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result, nil
}

func lintProperty(location string, schema *openapi3.Schema) []Violation {
	raw, ok := schema.Extensions[ExtensionKey]
	if !ok {
		return nil
	}
	ext, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{Location: location, Message: ExtensionKey + " must be an object"}}
	}

	var result []Violation
	add := func(format string, args ...any) {
		result = append(result, Violation{Location: location, Message: fmt.Sprintf(format, args...)})
	}

	for key := range ext {
		if _, known := knownExtensionKeys[key]; !known {
			add("unsupported key %q", key)
		}
	}
	if value, ok := ext["kind"]; ok {
		switch field.Kind(strings.ToLower(stringValue(value))) {
		case field.KindNumber, field.KindEmail:
		default:
			add("kind %v is not number or email", value)
		}
	}
	if value, ok := ext["delay_ms"]; ok {
		delay, isInt := intValue(value)
		if !isInt {
			add("delay_ms %v is not an integer", value)
		} else if delay < 0 {
			add("delay_ms %d must not be negative", delay)
		}
	}
	if value, ok := ext["order"]; ok {
		if _, isInt := intValue(value); !isInt {
			add("order %v is not an integer", value)
		}
	}
	if value, ok := ext["allow_empty"]; ok {
		if _, isBool := value.(bool); !isBool {
			add("allow_empty %v is not a boolean", value)
		}
	}
	if schema.Pattern != "" {
		if _, err := pattern.Compile(schema.Pattern); err != nil {
			add("pattern does not compile: %v", err)
		}
	}
	return result
}

package fieldspec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes and validates a YAML field document. Unknown keys are
// rejected so typos surface early.
func LoadYAML(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("fieldspec: decode yaml: %w", err)
	}
	for idx := range doc.Fields {
		doc.Fields[idx] = doc.Fields[idx].WithDefaults()
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// LoadFile reads a field document from disk. Files carrying an "openapi" key
// are treated as OpenAPI documents and schemaName selects the component
// schema; anything else is parsed as a YAML field document.
func LoadFile(ctx context.Context, path, schemaName string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("fieldspec: read %s: %w", path, err)
	}
	if isOpenAPI(path, data) {
		return FromOpenAPI(ctx, data, schemaName)
	}
	return LoadYAML(data)
}

func isOpenAPI(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return true
	}
	var probe struct {
		OpenAPI string `yaml:"openapi"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false
	}
	return strings.TrimSpace(probe.OpenAPI) != ""
}

// Package fieldspec describes fields declaratively so hosts can build widgets
// from configuration. Specs load from YAML documents or from the properties of
// an OpenAPI component schema.
package fieldspec

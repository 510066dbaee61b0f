// Package openapi renders property structs as OpenAPI 3 component schemas.
package openapi

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	style "github.com/goliatone/go-style"
)

const (
	defaultOpenAPIVersion = "3.0.3"
	defaultComponentName  = "StyleProperties"
)

// GeneratorOption customizes the generated document.
type GeneratorOption func(*generator)

// WithOpenAPIVersion overrides the "openapi" field of the document.
func WithOpenAPIVersion(version string) GeneratorOption {
	return func(g *generator) {
		if version = strings.TrimSpace(version); version != "" {
			g.openAPIVersion = version
		}
	}
}

// WithComponentName sets the name the schema is registered under in
// components.schemas.
func WithComponentName(name string) GeneratorOption {
	return func(g *generator) {
		if name = strings.TrimSpace(name); name != "" {
			g.componentName = name
		}
	}
}

// WithInfo sets the info block of the document.
func WithInfo(title, version string) GeneratorOption {
	return func(g *generator) {
		g.title = strings.TrimSpace(title)
		g.version = strings.TrimSpace(version)
	}
}

type generator struct {
	openAPIVersion string
	componentName  string
	title          string
	version        string
}

// NewGenerator constructs an OpenAPI schema generator.
func NewGenerator(opts ...GeneratorOption) style.SchemaGenerator {
	g := generator{
		openAPIVersion: defaultOpenAPIVersion,
		componentName:  defaultComponentName,
		title:          "Style properties",
		version:        "1.0.0",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&g)
		}
	}
	return g
}

// Option returns a style.Option that installs the OpenAPI generator.
func Option(opts ...GeneratorOption) style.Option {
	return style.WithSchemaGenerator(NewGenerator(opts...))
}

// Generate builds the document from the static type of value, so unset
// pointer slots are described like set ones.
func (g generator) Generate(value any) (style.SchemaDocument, error) {
	schema := map[string]any{"type": "object", "properties": map[string]any{}}
	if value != nil {
		built, err := schemaForType(reflect.TypeOf(value), "")
		if err != nil {
			return style.SchemaDocument{}, err
		}
		schema = built
	}
	return style.SchemaDocument{
		Format: style.SchemaFormatOpenAPI,
		Document: map[string]any{
			"openapi": g.openAPIVersion,
			"info": map[string]any{
				"title":   g.title,
				"version": g.version,
			},
			"components": map[string]any{
				"schemas": map[string]any{
					g.componentName: schema,
				},
			},
		},
	}, nil
}

func schemaForType(typ reflect.Type, enum string) (map[string]any, error) {
	nullable := false
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
		nullable = true
	}

	var schema map[string]any
	switch typ.Kind() {
	case reflect.Bool:
		schema = map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		schema = map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		schema = map[string]any{"type": "number"}
	case reflect.String:
		schema = map[string]any{"type": "string"}
		if typ.PkgPath() != "" {
			schema["x-go-type"] = typ.Name()
		}
	case reflect.Struct:
		if typ == reflect.TypeOf(time.Time{}) {
			schema = map[string]any{"type": "string", "format": "date-time"}
			break
		}
		built, err := schemaForStruct(typ)
		if err != nil {
			return nil, err
		}
		schema = built
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("openapi: map key type %s unsupported", typ.Key())
		}
		values, err := schemaForType(typ.Elem(), "")
		if err != nil {
			return nil, err
		}
		schema = map[string]any{"type": "object", "additionalProperties": values}
	case reflect.Slice, reflect.Array:
		items, err := schemaForType(typ.Elem(), "")
		if err != nil {
			return nil, err
		}
		schema = map[string]any{"type": "array", "items": items}
	default:
		return nil, fmt.Errorf("openapi: type %s unsupported", typ)
	}

	if enum != "" {
		schema["enum"] = strings.Split(enum, ",")
	}
	if nullable {
		schema["nullable"] = true
	}
	return schema, nil
}

func schemaForStruct(typ reflect.Type) (map[string]any, error) {
	properties := map[string]any{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		child, err := schemaForType(field.Type, field.Tag.Get("enum"))
		if err != nil {
			return nil, fmt.Errorf("openapi: field %s: %w", field.Name, err)
		}
		properties[name] = child
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}, nil
}

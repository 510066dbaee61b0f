package style

import (
	"reflect"
	"strings"
)

// FieldDescriptor describes one property slot.
type FieldDescriptor struct {
	Path string   `json:"path"`
	Type string   `json:"type"`
	Enum []string `json:"enum,omitempty"`
}

// DescribeProperties lists every property slot in declaration order.
func DescribeProperties() []FieldDescriptor {
	return describeType(reflect.TypeOf(Properties{}))
}

// Schema generates a schema document for the property slots through the
// configured SchemaGenerator.
func (s *Style) Schema() (SchemaDocument, error) {
	return s.schemaGenerator().Generate(s.Properties)
}

// DefaultSchemaGenerator returns the built-in descriptor-based schema generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(value any) (SchemaDocument, error) {
	descriptors := []FieldDescriptor{}
	if value != nil {
		descriptors = append(descriptors, describeType(reflect.TypeOf(value))...)
	}
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: descriptors,
	}, nil
}

func describeType(typ reflect.Type) []FieldDescriptor {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldDescriptor
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
		descriptor := FieldDescriptor{Path: name, Type: typeLabel(field.Type)}
		if enum := field.Tag.Get("enum"); enum != "" {
			descriptor.Enum = strings.Split(enum, ",")
		}
		fields = append(fields, descriptor)
	}
	return fields
}

func typeLabel(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if name := typ.Name(); name != "" {
		return name
	}
	return typ.String()
}

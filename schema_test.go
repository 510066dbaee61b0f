package style

import "testing"

func TestDescribePropertiesCoversEverySlot(t *testing.T) {
	descriptors := DescribeProperties()
	if len(descriptors) != len(PropertyNames()) {
		t.Fatalf("expected one descriptor per slot, got %d vs %d", len(descriptors), len(PropertyNames()))
	}

	byPath := make(map[string]FieldDescriptor, len(descriptors))
	for _, descriptor := range descriptors {
		byPath[descriptor.Path] = descriptor
	}
	if got := byPath["background-color"].Type; got != "Color" {
		t.Fatalf("expected Color type, got %q", got)
	}
	if got := byPath["opacity"].Type; got != "float64" {
		t.Fatalf("expected float64 type, got %q", got)
	}
	if enum := byPath["flex-direction"].Enum; len(enum) != 4 || enum[0] != "row" {
		t.Fatalf("unexpected enum %v", enum)
	}
}

func TestStyleSchemaUsesDescriptorGeneratorByDefault(t *testing.T) {
	v := newTestView("v", nil)
	doc, err := v.style.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if doc.Format != SchemaFormatDescriptors {
		t.Fatalf("unexpected format %q", doc.Format)
	}
	descriptors, ok := doc.Document.([]FieldDescriptor)
	if !ok || len(descriptors) != len(PropertyNames()) {
		t.Fatalf("unexpected document %T", doc.Document)
	}
}

type staticGenerator struct{}

func (staticGenerator) Generate(any) (SchemaDocument, error) {
	return SchemaDocument{Format: "static", Document: "ok"}, nil
}

func TestWithSchemaGenerator(t *testing.T) {
	v := newTestView("v", nil, WithSchemaGenerator(staticGenerator{}))
	doc, err := v.style.Schema()
	if err != nil || doc.Format != "static" {
		t.Fatalf("expected custom generator, got %+v %v", doc, err)
	}
}

func TestDescriptorGeneratorNilValue(t *testing.T) {
	doc, err := DefaultSchemaGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if descriptors := doc.Document.([]FieldDescriptor); len(descriptors) != 0 {
		t.Fatalf("expected empty descriptors, got %v", descriptors)
	}
}

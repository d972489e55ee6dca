package variant

// SchemaFormat identifies the representation used by a schema document.
type SchemaFormat string

const (
	// SchemaFormatDescriptors marks flat path/kind descriptor lists.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI marks OpenAPI 3 documents.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument carries a generated schema together with its format tag.
// Document is format-specific and always JSON-serializable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator derives a schema document from the shape of a tree.
type SchemaGenerator[S Scalar[S]] interface {
	Generate(v *Value[S]) (SchemaDocument, error)
}

// FieldDescriptor names one addressable path in a tree and the kind found
// there. Scalar leaves report their vocabulary kind, arrays report
// "array<elemkind>" from their first element, nulls report "null".
type FieldDescriptor struct {
	Path string
	Kind string
}

// DefaultSchemaGenerator returns the built-in descriptor-based generator.
func DefaultSchemaGenerator[S Scalar[S]]() SchemaGenerator[S] {
	return descriptorGenerator[S]{}
}

type descriptorGenerator[S Scalar[S]] struct{}

func (descriptorGenerator[S]) Generate(v *Value[S]) (SchemaDocument, error) {
	descriptors := Describe(v)
	if descriptors == nil {
		descriptors = []FieldDescriptor{}
	}
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: descriptors,
	}, nil
}

// Describe flattens a tree into field descriptors, one per leaf or array,
// visiting object keys in sorted order and joining paths with dots. A bare
// leaf at the root describes to nothing: there is no path to name it by.
func Describe[S Scalar[S]](v *Value[S]) []FieldDescriptor {
	return describeValue(v, "")
}

func describeValue[S Scalar[S]](v *Value[S], prefix string) []FieldDescriptor {
	switch v.Kind() {
	case KindObject:
		if v.Len() == 0 {
			return []FieldDescriptor{{Path: prefix, Kind: "object"}}
		}
		var fields []FieldDescriptor
		for _, key := range v.Keys() {
			entry, _ := v.Key(key)
			fields = append(fields, describeValue(entry, joinPath(prefix, key))...)
		}
		return fields
	case KindArray:
		return []FieldDescriptor{{Path: prefix, Kind: arrayLabel(v)}}
	default:
		if prefix == "" {
			return nil
		}
		return []FieldDescriptor{{Path: prefix, Kind: kindLabel(v)}}
	}
}

func arrayLabel[S Scalar[S]](v *Value[S]) string {
	if v.Len() == 0 {
		return "array"
	}
	first, _ := v.Index(0)
	return "array<" + kindLabel(first) + ">"
}

// kindLabel names a node for descriptor output: scalars by vocabulary kind,
// containers and nulls by tree kind.
func kindLabel[S Scalar[S]](v *Value[S]) string {
	switch v.Kind() {
	case KindScalar:
		return string(v.ScalarKind())
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

package fields

// Type discriminates the field definition variants.
type Type string

const (
	TypeString         Type = "string"
	TypeEnum           Type = "enum"
	TypeMultipleSelect Type = "multiple_select"
)

// Wire-level type names as they appear in schema documents.
const (
	WireTypeString         = "STRING"
	WireTypeEnum           = "ENUM"
	WireTypeMultipleSelect = "MULTIPLE_SELECT"
)

// ParseType maps a wire-level type name to its Type. The second return value
// reports whether the name is recognized.
func ParseType(wire string) (Type, bool) {
	switch wire {
	case WireTypeString:
		return TypeString, true
	case WireTypeEnum:
		return TypeEnum, true
	case WireTypeMultipleSelect:
		return TypeMultipleSelect, true
	default:
		return "", false
	}
}

// Definition is the validated, immutable model of one form field. Concrete
// variants are StringField, EnumField, and MultipleSelectField; switch on the
// concrete type when variant-specific attributes matter.
type Definition interface {
	Common() Attributes
}

// Attributes carries the shape every field variant shares. Label and
// ErrorMessage are already resolved to the active language by the time a
// definition exists.
type Attributes struct {
	Name         string            `json:"name"`
	Type         Type              `json:"type"`
	DataKey      string            `json:"dataKey"`
	Label        string            `json:"label"`
	Required     bool              `json:"required,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

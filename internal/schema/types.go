// Package schema defines the descriptor model for resource types and the
// read-only lookup built from it. A TypeDescriptor declares, per resource
// type, which payload fields exist, their data types and constraints, and
// which fields feed search and sorting.
package schema

import "fmt"

// DataType represents the built-in data types a payload field can declare
type DataType int

const (
	TypeString DataType = iota
	TypeInt
	TypeBool
	TypeDateTime
	TypeDecimal
)

// String returns the string representation of the data type
func (d DataType) String() string {
	switch d {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeDateTime:
		return "datetime"
	case TypeDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// ParseDataType converts a string to a DataType
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "int":
		return TypeInt, nil
	case "bool":
		return TypeBool, nil
	case "datetime":
		return TypeDateTime, nil
	case "decimal":
		return TypeDecimal, nil
	default:
		return 0, fmt.Errorf("unknown data type: %s", s)
	}
}

// FieldDefinition is one schema rule within a descriptor
type FieldDefinition struct {
	// Name is the payload property the rule applies to
	Name string

	// DataType is the expected JSON kind of the property
	DataType DataType

	// Required marks the field as mandatory (absent or null fails validation)
	Required bool

	// MaxLength is the maximum character length; string fields only
	MaxLength *int

	// Pattern is a regular expression the value must match; string fields only
	Pattern string
}

// IndexingDefinition lists which fields feed filtering, sorting, and search
type IndexingDefinition struct {
	// FilterFields are usable as equality filters by the query layer
	FilterFields []string

	// SortFields are legal sort keys for list operations
	SortFields []string

	// FullTextFields feed the denormalized search text, in list order
	FullTextFields []string
}

// UIHints carries presentation metadata for clients rendering this type
type UIHints struct {
	// TitleField names the field used as the resource's display title
	TitleField string

	// ListFields are the fields shown in list views
	ListFields []string
}

// PolicyDefinition maps operation names to the roles allowed to perform them.
// The validation core carries it but does not enforce it.
type PolicyDefinition struct {
	AllowedRoles map[string][]string
}

// TypeDescriptor is the declarative schema and metadata for one resource type
type TypeDescriptor struct {
	// TypeKey uniquely identifies the type; matched case-insensitively
	TypeKey string

	// DisplayName is the human-readable type name
	DisplayName string

	// SchemaVersion is the positive version number of this descriptor
	SchemaVersion int

	// Fields are the schema rules; order is the error-reporting order
	Fields []FieldDefinition

	// Indexing is optional filter/sort/search field metadata
	Indexing *IndexingDefinition

	// UIHints is optional presentation metadata
	UIHints *UIHints

	// Policy is optional per-operation role metadata
	Policy *PolicyDefinition
}

// Field returns the field definition with the given name, if declared
func (d *TypeDescriptor) Field(name string) (*FieldDefinition, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// FullTextFields returns the descriptor's full-text field names, or nil
// when no indexing metadata is declared
func (d *TypeDescriptor) FullTextFields() []string {
	if d.Indexing == nil {
		return nil
	}
	return d.Indexing.FullTextFields
}

// TitleField returns the UI-hint title field name, or empty when unset
func (d *TypeDescriptor) TitleField() string {
	if d.UIHints == nil {
		return ""
	}
	return d.UIHints.TitleField
}

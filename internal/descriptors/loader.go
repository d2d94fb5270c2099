// Package descriptors loads type descriptor definitions from a YAML or
// JSON file and builds the schema lookup from them. Loading happens once
// at startup; any error here is a configuration error and aborts the
// process rather than surfacing at request time.
package descriptors

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/RamiObaid92/AIProjectTest/internal/schema"
)

// fileDescriptor mirrors one descriptor entry in the definitions file
type fileDescriptor struct {
	TypeKey       string              `mapstructure:"typeKey"`
	DisplayName   string              `mapstructure:"displayName"`
	SchemaVersion int                 `mapstructure:"schemaVersion"`
	Fields        []fileField         `mapstructure:"fields"`
	Indexing      *fileIndexing       `mapstructure:"indexing"`
	UIHints       *fileUIHints        `mapstructure:"uiHints"`
	Policy        map[string][]string `mapstructure:"policy"`
}

type fileField struct {
	Name      string `mapstructure:"name"`
	DataType  string `mapstructure:"dataType"`
	Required  bool   `mapstructure:"required"`
	MaxLength *int   `mapstructure:"maxLength"`
	Pattern   string `mapstructure:"pattern"`
}

type fileIndexing struct {
	FilterFields   []string `mapstructure:"filterFields"`
	SortFields     []string `mapstructure:"sortFields"`
	FullTextFields []string `mapstructure:"fullTextFields"`
}

type fileUIHints struct {
	TitleField string   `mapstructure:"titleField"`
	ListFields []string `mapstructure:"listFields"`
}

// Load reads the descriptor definitions file and returns the descriptors
// in file order
func Load(path string) ([]*schema.TypeDescriptor, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read descriptors file %s: %w", path, err)
	}

	var raw []fileDescriptor
	if err := v.UnmarshalKey("types", &raw); err != nil {
		return nil, fmt.Errorf("failed to parse descriptors file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("descriptors file %s declares no types", path)
	}

	descriptors := make([]*schema.TypeDescriptor, 0, len(raw))
	for _, entry := range raw {
		descriptor, err := convert(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid descriptor %q: %w", entry.TypeKey, err)
		}
		descriptors = append(descriptors, descriptor)
	}

	return descriptors, nil
}

// LoadLookup loads the definitions file and constructs the lookup,
// failing fast on duplicate or empty type keys
func LoadLookup(path string) (*schema.Lookup, error) {
	descriptors, err := Load(path)
	if err != nil {
		return nil, err
	}

	lookup, err := schema.NewLookup(descriptors)
	if err != nil {
		return nil, fmt.Errorf("invalid descriptor set in %s: %w", path, err)
	}

	return lookup, nil
}

// convert maps a file entry onto the schema model
func convert(entry fileDescriptor) (*schema.TypeDescriptor, error) {
	if entry.SchemaVersion < 1 {
		return nil, fmt.Errorf("schemaVersion must be a positive integer, got %d", entry.SchemaVersion)
	}

	fields := make([]schema.FieldDefinition, 0, len(entry.Fields))
	for _, f := range entry.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field with empty name")
		}

		dataType, err := schema.ParseDataType(f.DataType)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		if f.MaxLength != nil && *f.MaxLength < 1 {
			return nil, fmt.Errorf("field %q: maxLength must be positive, got %d", f.Name, *f.MaxLength)
		}
		if f.MaxLength != nil && dataType != schema.TypeString {
			return nil, fmt.Errorf("field %q: maxLength only applies to string fields", f.Name)
		}
		if f.Pattern != "" && dataType != schema.TypeString {
			return nil, fmt.Errorf("field %q: pattern only applies to string fields", f.Name)
		}

		fields = append(fields, schema.FieldDefinition{
			Name:      f.Name,
			DataType:  dataType,
			Required:  f.Required,
			MaxLength: f.MaxLength,
			Pattern:   f.Pattern,
		})
	}

	descriptor := &schema.TypeDescriptor{
		TypeKey:       entry.TypeKey,
		DisplayName:   entry.DisplayName,
		SchemaVersion: entry.SchemaVersion,
		Fields:        fields,
	}

	if entry.Indexing != nil {
		descriptor.Indexing = &schema.IndexingDefinition{
			FilterFields:   entry.Indexing.FilterFields,
			SortFields:     entry.Indexing.SortFields,
			FullTextFields: entry.Indexing.FullTextFields,
		}
	}
	if entry.UIHints != nil {
		descriptor.UIHints = &schema.UIHints{
			TitleField: entry.UIHints.TitleField,
			ListFields: entry.UIHints.ListFields,
		}
	}
	if len(entry.Policy) > 0 {
		descriptor.Policy = &schema.PolicyDefinition{AllowedRoles: entry.Policy}
	}

	return descriptor, nil
}

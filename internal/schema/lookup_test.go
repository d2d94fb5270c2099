package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLookup(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []*TypeDescriptor
		wantErr     bool
	}{
		{
			name: "valid descriptors",
			descriptors: []*TypeDescriptor{
				{TypeKey: "book", DisplayName: "Book", SchemaVersion: 1},
				{TypeKey: "article", DisplayName: "Article", SchemaVersion: 1},
			},
			wantErr: false,
		},
		{
			name:        "empty set",
			descriptors: nil,
			wantErr:     false,
		},
		{
			name: "empty type key",
			descriptors: []*TypeDescriptor{
				{TypeKey: "", DisplayName: "Nameless", SchemaVersion: 1},
			},
			wantErr: true,
		},
		{
			name: "duplicate type key",
			descriptors: []*TypeDescriptor{
				{TypeKey: "book", SchemaVersion: 1},
				{TypeKey: "book", SchemaVersion: 2},
			},
			wantErr: true,
		},
		{
			name: "duplicate after case folding",
			descriptors: []*TypeDescriptor{
				{TypeKey: "book", SchemaVersion: 1},
				{TypeKey: "BOOK", SchemaVersion: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup, err := NewLookup(tt.descriptors)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, lookup)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.descriptors), lookup.Count())
		})
	}
}

func TestLookup_Get_CaseInsensitive(t *testing.T) {
	lookup, err := NewLookup([]*TypeDescriptor{
		{TypeKey: "Book", DisplayName: "Book", SchemaVersion: 1},
	})
	require.NoError(t, err)

	for _, key := range []string{"book", "Book", "BOOK", "bOOk"} {
		d, ok := lookup.Get(key)
		require.True(t, ok, "expected descriptor for key %q", key)
		assert.Equal(t, "Book", d.TypeKey)
	}

	_, ok := lookup.Get("magazine")
	assert.False(t, ok)
}

func TestLookup_Require(t *testing.T) {
	lookup, err := NewLookup([]*TypeDescriptor{
		{TypeKey: "book", SchemaVersion: 1},
	})
	require.NoError(t, err)

	d, err := lookup.Require("BOOK")
	require.NoError(t, err)
	assert.Equal(t, "book", d.TypeKey)

	_, err = lookup.Require("no-such-type")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDescriptorNotFound))
}

func TestLookup_KeysAndAll(t *testing.T) {
	lookup, err := NewLookup([]*TypeDescriptor{
		{TypeKey: "Profile", SchemaVersion: 1},
		{TypeKey: "article", SchemaVersion: 1},
		{TypeKey: "Book", SchemaVersion: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"article", "book", "profile"}, lookup.Keys())

	all := lookup.All()
	require.Len(t, all, 3)
	assert.Equal(t, "article", all[0].TypeKey)
	assert.Equal(t, "Book", all[1].TypeKey)
	assert.Equal(t, "Profile", all[2].TypeKey)
}

func TestTypeDescriptor_Field(t *testing.T) {
	d := &TypeDescriptor{
		TypeKey: "book",
		Fields: []FieldDefinition{
			{Name: "title", DataType: TypeString, Required: true},
			{Name: "pages", DataType: TypeInt},
		},
	}

	field, ok := d.Field("pages")
	require.True(t, ok)
	assert.Equal(t, TypeInt, field.DataType)

	_, ok = d.Field("missing")
	assert.False(t, ok)
}

func TestParseDataType(t *testing.T) {
	tests := []struct {
		input   string
		want    DataType
		wantErr bool
	}{
		{input: "string", want: TypeString},
		{input: "int", want: TypeInt},
		{input: "bool", want: TypeBool},
		{input: "datetime", want: TypeDateTime},
		{input: "decimal", want: TypeDecimal},
		{input: "float", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDataType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

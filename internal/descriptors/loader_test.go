package descriptors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamiObaid92/AIProjectTest/internal/schema"
)

const validDescriptors = `
types:
  - typeKey: book
    displayName: Book
    schemaVersion: 1
    fields:
      - name: title
        dataType: string
        required: true
        maxLength: 100
      - name: isbn
        dataType: string
        pattern: "^[0-9-]+$"
      - name: pages
        dataType: int
      - name: publishedAt
        dataType: datetime
    indexing:
      filterFields: [author]
      sortFields: [title, publishedAt]
      fullTextFields: [title, author]
    uiHints:
      titleField: title
      listFields: [title, isbn]
    policy:
      create: [editor, admin]
      delete: [admin]
  - typeKey: profile
    displayName: Profile
    schemaVersion: 2
    fields:
      - name: displayName
        dataType: string
        required: true
`

func writeDescriptors(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "descriptors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDescriptors(t, validDescriptors)

	descriptors, err := Load(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	book := descriptors[0]
	assert.Equal(t, "book", book.TypeKey)
	assert.Equal(t, "Book", book.DisplayName)
	assert.Equal(t, 1, book.SchemaVersion)
	require.Len(t, book.Fields, 4)

	title := book.Fields[0]
	assert.Equal(t, schema.TypeString, title.DataType)
	assert.True(t, title.Required)
	require.NotNil(t, title.MaxLength)
	assert.Equal(t, 100, *title.MaxLength)

	assert.Equal(t, "^[0-9-]+$", book.Fields[1].Pattern)
	assert.Equal(t, schema.TypeInt, book.Fields[2].DataType)
	assert.Equal(t, schema.TypeDateTime, book.Fields[3].DataType)

	require.NotNil(t, book.Indexing)
	assert.Equal(t, []string{"title", "author"}, book.Indexing.FullTextFields)

	require.NotNil(t, book.UIHints)
	assert.Equal(t, "title", book.UIHints.TitleField)

	require.NotNil(t, book.Policy)
	assert.Equal(t, []string{"editor", "admin"}, book.Policy.AllowedRoles["create"])

	assert.Nil(t, descriptors[1].Indexing)
}

func TestLoadLookup(t *testing.T) {
	path := writeDescriptors(t, validDescriptors)

	lookup, err := LoadLookup(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lookup.Count())
	assert.True(t, lookup.Exists("BOOK"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing file is reported by path",
			content: "",
		},
		{
			name: "no types declared",
			content: `
types: []
`,
		},
		{
			name: "unknown data type",
			content: `
types:
  - typeKey: book
    schemaVersion: 1
    fields:
      - name: title
        dataType: varchar
`,
		},
		{
			name: "zero schema version",
			content: `
types:
  - typeKey: book
    schemaVersion: 0
`,
		},
		{
			name: "maxLength on non-string field",
			content: `
types:
  - typeKey: book
    schemaVersion: 1
    fields:
      - name: pages
        dataType: int
        maxLength: 10
`,
		},
		{
			name: "pattern on non-string field",
			content: `
types:
  - typeKey: book
    schemaVersion: 1
    fields:
      - name: pages
        dataType: int
        pattern: "^[0-9]+$"
`,
		},
		{
			name: "non-positive maxLength",
			content: `
types:
  - typeKey: book
    schemaVersion: 1
    fields:
      - name: title
        dataType: string
        maxLength: 0
`,
		},
		{
			name: "field without a name",
			content: `
types:
  - typeKey: book
    schemaVersion: 1
    fields:
      - dataType: string
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			if tt.content == "" {
				path = filepath.Join(t.TempDir(), "missing.yaml")
			} else {
				path = writeDescriptors(t, tt.content)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadLookup_DuplicateKeysFailFast(t *testing.T) {
	path := writeDescriptors(t, `
types:
  - typeKey: book
    schemaVersion: 1
  - typeKey: BOOK
    schemaVersion: 1
`)

	_, err := LoadLookup(path)
	assert.Error(t, err)
}

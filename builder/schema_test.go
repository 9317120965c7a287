package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commandSchemaYAML = `
package: command
imports:
  - path: time
  - alias: y
    path: gopkg.in/yaml.v3
types:
  - name: Command
    fields:
      - name: Executable
        type: string
      - name: Args
        type: "[]string"
      - type: int
      - name: Timeout
        type: time.Duration
  - name: Shape
    kind: variant
`

func TestParseSchema_YAML(t *testing.T) {
	t.Parallel()

	schema, err := ParseSchema([]byte(commandSchemaYAML))
	require.NoError(t, err)
	assert.Equal(t, "command", schema.Package)

	raws := schema.RawTypes()
	require.Len(t, raws, 2)
	assert.Equal(t, KindStruct, raws[0].Kind)
	assert.Equal(t, KindVariant, raws[1].Kind)
	assert.Equal(t, map[string]string{"time": "time", "y": "gopkg.in/yaml.v3"}, raws[0].Imports)

	td, err := Read(raws[0])
	require.NoError(t, err)

	want := TypeDescriptor{
		Name: "Command",
		Fields: []FieldDescriptor{
			{Name: "Executable", Type: "string"},
			{Name: "Args", Type: "[]string"},
			{Name: "Timeout", Type: "time.Duration"},
		},
		Imports: map[string]string{"time": "time"},
	}
	if diff := cmp.Diff(want, td); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}

	_, err = Read(raws[1])
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestParseSchema_JSON(t *testing.T) {
	t.Parallel()

	doc := `{
  "types": [
    {
      "name": "Command",
      "kind": "struct",
      "fields": [
        { "name": "Executable", "type": "string" },
        { "name": "Args", "type": "[]string" }
      ]
    }
  ]
}`

	schema, err := ParseSchema([]byte(doc))
	require.NoError(t, err)

	raw, ok := schema.Lookup("Command")
	require.True(t, ok)
	assert.Equal(t, []RawField{{Name: "Executable", Type: "string"}, {Name: "Args", Type: "[]string"}}, raw.Fields)

	_, ok = schema.Lookup("Missing")
	assert.False(t, ok)
}

func TestParseSchema_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "empty document", doc: "", wantErr: "empty document"},
		{name: "unknown key", doc: "types:\n  - name: A\n    feilds: []\n", wantErr: "feilds"},
		{name: "no types", doc: "package: p\n", wantErr: "types (must have at least 1)"},
		{name: "bad package", doc: "package: my-pkg\ntypes:\n  - name: A\n", wantErr: `package "my-pkg"`},
		{name: "import without path", doc: "imports:\n  - alias: x\ntypes:\n  - name: A\n", wantErr: "imports[0].path"},
		{name: "not yaml", doc: "types: [", wantErr: "schema:"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSchema([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

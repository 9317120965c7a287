package builder

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema is the file format accepted by ParseSchema. JSON documents decode the same way.
//
//	package: command
//	imports:
//	  - path: time
//	types:
//	  - name: Command
//	    fields:
//	      - name: Executable
//	        type: string
//	      - name: Timeout
//	        type: time.Duration
type Schema struct {
	Package string         `yaml:"package,omitempty"`
	Imports []SchemaImport `yaml:"imports,omitempty"`
	Types   []RawType      `yaml:"types"`
}

// SchemaImport declares a package that field types may qualify.
// Alias defaults to the last element of Path.
type SchemaImport struct {
	Alias string `yaml:"alias,omitempty"`
	Path  string `yaml:"path"`
}

// ParseSchema decodes a YAML or JSON schema document. Unknown keys are rejected.
func ParseSchema(data []byte) (Schema, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var schema Schema
	if err := decoder.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return Schema{}, errors.New("schema: empty document")
		}
		return Schema{}, fmt.Errorf("schema: %w", err)
	}

	if err := schema.validate(); err != nil {
		return Schema{}, err
	}
	return schema, nil
}

func (s Schema) validate() error {
	var missing []string

	if s.Package != "" && !token.IsIdentifier(s.Package) {
		missing = append(missing, fmt.Sprintf("package %q is not a Go identifier", s.Package))
	}
	if len(s.Types) == 0 {
		missing = append(missing, "types (must have at least 1)")
	}
	for i, imp := range s.Imports {
		if strings.TrimSpace(imp.Path) == "" {
			missing = append(missing, fmt.Sprintf("imports[%d].path", i))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema missing or invalid fields: %v", missing)
	}
	return nil
}

// RawTypes returns the declared types with the schema imports attached and
// an empty kind defaulted to struct.
func (s Schema) RawTypes() []RawType {
	imports := make(map[string]string, len(s.Imports))
	for _, imp := range s.Imports {
		ident := strings.TrimSpace(imp.Alias)
		if ident == "" {
			ident = importDefaultIdent(imp.Path)
		}
		imports[ident] = strings.TrimSpace(imp.Path)
	}

	out := make([]RawType, 0, len(s.Types))
	for _, raw := range s.Types {
		if raw.Kind == "" {
			raw.Kind = KindStruct
		}
		raw.Imports = imports
		out = append(out, raw)
	}
	return out
}

// Lookup returns the raw type with the given name.
func (s Schema) Lookup(name string) (RawType, bool) {
	for _, raw := range s.RawTypes() {
		if raw.Name == name {
			return raw, true
		}
	}
	return RawType{}, false
}

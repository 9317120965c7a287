package builder

import (
	"crypto/sha256"
	"encoding/hex"

	"gopkg.in/yaml.v3"
)

// Kind classifies the shape of an input type.
type Kind string

const (
	// KindStruct is a product type with named fields. It is the only supported kind.
	KindStruct Kind = "struct"

	// KindVariant is a sum type. In Go sources this is an interface type.
	KindVariant Kind = "variant"

	// KindUnion is a union without per-field names.
	KindUnion Kind = "union"

	// KindOther covers every other declaration (aliases, named basic types, ...).
	KindOther Kind = "other"
)

// RawField is one field as declared in the source, before filtering.
// Name is empty for positional fields.
type RawField struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type"`
}

// TypeParam is a type parameter of a generic struct.
type TypeParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// RawType is the front-end independent description of a type declaration.
type RawType struct {
	Name       string      `yaml:"name"`
	Kind       Kind        `yaml:"kind"`
	TypeParams []TypeParam `yaml:"typeParams,omitempty"`
	Fields     []RawField  `yaml:"fields"`

	// Imports maps package identifiers used in field types to import paths.
	Imports map[string]string `yaml:"-"`
}

// FieldDescriptor is a named field of a TypeDescriptor.
type FieldDescriptor struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// TypeDescriptor is the validated input of the synthesizer.
//
// Fields keep declaration order. Imports only holds the packages that field
// types and type parameter constraints actually reference.
type TypeDescriptor struct {
	Name       string            `yaml:"name"`
	TypeParams []TypeParam       `yaml:"typeParams,omitempty"`
	Fields     []FieldDescriptor `yaml:"fields"`
	Imports    map[string]string `yaml:"imports,omitempty"`
}

// Generic reports whether the described struct has type parameters.
func (td TypeDescriptor) Generic() bool { return len(td.TypeParams) > 0 }

// Fingerprint returns the hex sha256 of the descriptor's YAML encoding.
func (td TypeDescriptor) Fingerprint() (string, error) {
	raw, err := yaml.Marshal(td)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

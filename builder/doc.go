// Package builder synthesizes builder types for Go structs.
//
// Given a description of a struct (its name plus an ordered list of named
// fields and their type expressions) the package emits Go source for a
// companion <Name>Builder:
//
//   - one buildkit.Slot per field, all empty on construction,
//   - New<Name>Builder(), a zero-argument constructor,
//   - one fluent setter per field that overwrites its slot and returns the builder,
//   - Missing(), Build() and MustBuild(); Build fails with buildkit.IncompleteError
//     until every slot has been populated.
//
// The pipeline has three stages, each a pure function of its input:
//
//	RawType --Read--> TypeDescriptor --Synthesize--> Artifact --RenderFile--> Go source
//
// RawType is a language-agnostic schema. ParseGoSource and ScanGoSource produce
// it from Go declarations; ParseSchema produces it from a YAML or JSON document.
//
// Only product types are accepted. Variant (sum) and union inputs are rejected
// with UnsupportedShapeError rather than silently producing nothing. Fields
// without a name (embedded or blank fields) are dropped from the descriptor.
//
// Generated builders read their slots on Build; they never consume them, so a
// complete builder can be built repeatedly with equal results.
package builder

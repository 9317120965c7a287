// Package buildergen generates fluent, completeness-checked builders for Go
// struct types.
//
// A builder stages every field of its target in an optional slot and only
// assembles the value once all of them were set:
//
//	cmd, err := command.NewCommandBuilder().
//		Executable("ls").
//		Args([]string{"-la"}).
//		Env(nil).
//		CurrentDir("/tmp").
//		Build()
//
// Package layout:
//   - builder: reads type declarations (Go source or schema files) into
//     descriptors and synthesizes the builder code
//   - buildkit: the runtime generated code imports (Slot, IncompleteError)
//   - cmd/buildergen: the go:generate front end
//   - examples/command: a checked-in generated builder and its tests
package buildergen

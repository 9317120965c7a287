// Package buildkit is the small runtime shared by builders that buildergen generates.
//
// Generated code depends on two things from here:
//
//   - Slot[T]: an optional value that starts empty and becomes populated on Set.
//     Each generated builder holds one Slot per field of its target type.
//   - IncompleteError / ErrIncomplete: the error Build returns when one or more
//     slots were never populated.
//
// Builders are single-owner values. Nothing in this package is safe for
// concurrent mutation, and nothing here needs to be.
//
// Import
//
//	"github.com/sghaida/buildergen/buildkit"
package buildkit

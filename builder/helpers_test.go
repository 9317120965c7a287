package builder

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

const commandSource = `package command

import (
	"time"

	y "gopkg.in/yaml.v3"
)

// Command describes a process invocation.
//
// +buildergen:builder
type Command struct {
	Executable string
	Args       []string
	Env        []string
	CurrentDir string
}

type Job struct {
	Command
	_       int
	Name    string
	Timeout time.Duration
	Meta    *y.Node
}

type Shape interface{ Area() float64 }

type Celsius float64

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}
`

// commandDescriptor is the descriptor Read produces for Command.
func commandDescriptor() TypeDescriptor {
	return TypeDescriptor{
		Name: "Command",
		Fields: []FieldDescriptor{
			{Name: "Executable", Type: "string"},
			{Name: "Args", Type: "[]string"},
			{Name: "Env", Type: "[]string"},
			{Name: "CurrentDir", Type: "string"},
		},
	}
}

//
// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// renderString synthesizes every descriptor into one file and returns the source.
func renderString(t *testing.T, opts FileOptions, descriptors ...TypeDescriptor) string {
	t.Helper()

	artifacts := make([]*Artifact, 0, len(descriptors))
	for _, td := range descriptors {
		artifact, err := Synthesize(td)
		require.NoError(t, err)
		artifacts = append(artifacts, artifact)
	}

	var buf bytes.Buffer
	require.NoError(t, RenderFile(&buf, opts, artifacts...))
	return buf.String()
}

// requireParses fails the test if src is not a syntactically valid Go file.
func requireParses(t *testing.T, src string) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.AllErrors)
	require.NoError(t, err, src)
}

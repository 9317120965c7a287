package builder

import (
	"bytes"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderTypeDecl renders "var x <expr>" through jennifer so gofmt normalizes spacing.
func renderTypeDecl(t *testing.T, imports map[string]string, expr string) string {
	t.Helper()

	code, err := typeEmitter{imports: imports}.emit(expr)
	require.NoError(t, err)

	file := jen.NewFile("p")
	file.Var().Id("x").Add(code)

	var buf bytes.Buffer
	require.NoError(t, file.Render(&buf))
	return buf.String()
}

func TestTypeEmitter_RendersGoTypes(t *testing.T) {
	t.Parallel()

	imports := map[string]string{
		"time": "time",
		"y":    "gopkg.in/yaml.v3",
		"http": "net/http",
	}

	testCases := []struct {
		expr string
		want string
	}{
		{expr: "string", want: "var x string"},
		{expr: "*int", want: "var x *int"},
		{expr: "[]string", want: "var x []string"},
		{expr: "[4]byte", want: "var x [4]byte"},
		{expr: "map[string][]int", want: "var x map[string][]int"},
		{expr: "chan int", want: "var x chan int"},
		{expr: "chan<- int", want: "var x chan<- int"},
		{expr: "<-chan int", want: "var x <-chan int"},
		{expr: "func(int, string) error", want: "var x func(int, string) error"},
		{expr: "func(a, b int) (int, error)", want: "var x func(int, int) (int, error)"},
		{expr: "func(...string)", want: "var x func(...string)"},
		{expr: "interface{}", want: "var x interface{}"},
		{expr: "struct{}", want: "var x struct{}"},
		{expr: "time.Duration", want: "var x time.Duration"},
		{expr: "map[string]*time.Time", want: "var x map[string]*time.Time"},
		{expr: "List[int]", want: "var x List[int]"},
		{expr: "Pair[string, time.Duration]", want: "var x Pair[string, time.Duration]"},
		{expr: "http.Handler", want: "var x http.Handler"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()

			out := renderTypeDecl(t, imports, tc.expr)
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestTypeEmitter_QualifiedTypesImportTheirPackage(t *testing.T) {
	t.Parallel()

	out := renderTypeDecl(t, map[string]string{"time": "time"}, "[]time.Duration")
	assert.Contains(t, out, `import "time"`)
}

func TestTypeEmitter_Rejects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		expr    string
		wantErr string
	}{
		{expr: "[...]int", wantErr: `"[...]int"`},
		{expr: "interface{ Close() error }", wantErr: "unsupported type expression"},
		{expr: "struct{ A int }", wantErr: "unsupported type expression"},
		{expr: "1 + 2", wantErr: "unsupported type expression"},
		{expr: "a.b.C", wantErr: "unsupported type expression"},
		{expr: "missing.Type", wantErr: `unknown package qualifier "missing"`},
		{expr: "[", wantErr: "parse type"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()

			_, err := typeEmitter{}.emit(tc.expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestTypeEmitter_Constraints(t *testing.T) {
	t.Parallel()

	code, err := typeEmitter{}.emit("~int | ~string")
	require.NoError(t, err)

	file := jen.NewFile("p")
	file.Type().Id("Number").Interface(code)

	var buf bytes.Buffer
	require.NoError(t, file.Render(&buf))
	assert.Contains(t, buf.String(), "~int | ~string")
}

func TestQualifiers(t *testing.T) {
	t.Parallel()

	expr, err := parseTypeExpr("map[time.Duration][]*y.Node")
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "y"}, qualifiers(expr))

	expr, err = parseTypeExpr("func(time.Time) time.Time")
	require.NoError(t, err)
	assert.Equal(t, []string{"time"}, qualifiers(expr))
}

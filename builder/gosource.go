package builder

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"regexp"
	"strings"
)

// DefaultMarker is the doc-comment annotation ScanGoSource looks for.
const DefaultMarker = "+buildergen:builder"

// ScanResult is what ScanGoSource found in one Go file.
type ScanResult struct {
	Package string
	Types   []RawType
}

// ParseGoSource returns the RawType for the type declared as typeName in src.
func ParseGoSource(filename string, src []byte, typeName string) (RawType, error) {
	file, err := parseGoFile(filename, src)
	if err != nil {
		return RawType{}, err
	}
	imports := fileImports(file)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if ok && typeSpec.Name.Name == typeName {
				return rawTypeFromSpec(typeSpec, imports), nil
			}
		}
	}
	return RawType{}, TypeNotFoundError{Type: typeName, File: filename}
}

// PackageName returns the package clause of a Go file.
func PackageName(filename string, src []byte) (string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), filename, src, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}
	return file.Name.Name, nil
}

// ScanGoSource returns every type in src whose doc comment contains marker.
// Marked types of any kind are returned; Read decides whether they are usable.
func ScanGoSource(filename string, src []byte, marker string) (ScanResult, error) {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}

	file, err := parseGoFile(filename, src)
	if err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{Package: file.Name.Name}
	imports := fileImports(file)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			// A lone spec in a bare "type X ..." keeps its doc on the GenDecl.
			docs := []*ast.CommentGroup{typeSpec.Doc}
			if len(genDecl.Specs) == 1 {
				docs = append(docs, genDecl.Doc)
			}
			if hasMarker(marker, docs...) {
				result.Types = append(result.Types, rawTypeFromSpec(typeSpec, imports))
			}
		}
	}
	return result, nil
}

func parseGoFile(filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(token.NewFileSet(), filename, src, parser.ParseComments|parser.SkipObjectResolution)
}

// hasMarker returns true if any comment group contains the marker.
func hasMarker(marker string, groups ...*ast.CommentGroup) bool {
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			if strings.Contains(strings.TrimSpace(comment.Text), marker) {
				return true
			}
		}
	}
	return false
}

func rawTypeFromSpec(spec *ast.TypeSpec, imports map[string]string) RawType {
	raw := RawType{Name: spec.Name.Name, Imports: imports}

	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			constraint := types.ExprString(field.Type)
			for _, name := range field.Names {
				raw.TypeParams = append(raw.TypeParams, TypeParam{Name: name.Name, Constraint: constraint})
			}
		}
	}

	if spec.Assign.IsValid() {
		raw.Kind = KindOther
		return raw
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		raw.Kind = KindStruct
		for _, field := range t.Fields.List {
			typeExpr := types.ExprString(field.Type)
			if len(field.Names) == 0 {
				raw.Fields = append(raw.Fields, RawField{Type: typeExpr})
				continue
			}
			for _, name := range field.Names {
				raw.Fields = append(raw.Fields, RawField{Name: name.Name, Type: typeExpr})
			}
		}
	case *ast.InterfaceType:
		raw.Kind = KindVariant
	default:
		raw.Kind = KindOther
	}
	return raw
}

// fileImports maps the identifier each import is referenced by to its path.
// Blank and dot imports are skipped since they never qualify a field type.
func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		importPath := strings.Trim(spec.Path.Value, `"`)
		ident := importDefaultIdent(importPath)
		if spec.Name != nil {
			ident = spec.Name.Name
		}
		if ident == "_" || ident == "." || ident == "" {
			continue
		}
		imports[ident] = importPath
	}
	return imports
}

var (
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
	gopkgVersion = regexp.MustCompile(`\.v[0-9]+$`)
)

// importDefaultIdent guesses the identifier an unaliased import is referenced by.
//
//	time                         -> time
//	github.com/knadh/koanf/v2    -> koanf
//	gopkg.in/yaml.v3             -> yaml
//	github.com/mattn/go-isatty   -> isatty
func importDefaultIdent(importPath string) string {
	// Import paths always use forward slashes, even on Windows.
	importPath = strings.TrimSpace(importPath)
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	base = gopkgVersion.ReplaceAllString(base, "")
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")
	return strings.NewReplacer("-", "", ".", "").Replace(base)
}

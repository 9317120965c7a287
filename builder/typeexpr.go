package builder

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// parseTypeExpr parses a Go type expression such as "[]string" or "map[string]time.Duration".
func parseTypeExpr(expr string) (ast.Expr, error) {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	return e, nil
}

// qualifiers returns the package identifiers referenced by e, in first-use order.
func qualifiers(e ast.Expr) []string {
	var (
		out  []string
		seen = map[string]struct{}{}
	)
	ast.Inspect(e, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if ident, ok := sel.X.(*ast.Ident); ok {
			if _, dup := seen[ident.Name]; !dup {
				seen[ident.Name] = struct{}{}
				out = append(out, ident.Name)
			}
		}
		return false
	})
	return out
}

// typeEmitter turns parsed type expressions into jennifer code.
// Package selectors are emitted as qualified references so jennifer owns the import block.
type typeEmitter struct {
	imports map[string]string
}

func (t typeEmitter) emit(expr string) (*jen.Statement, error) {
	e, err := parseTypeExpr(expr)
	if err != nil {
		return nil, err
	}
	return t.code(e)
}

func (t typeEmitter) code(e ast.Expr) (*jen.Statement, error) {
	switch x := e.(type) {
	case *ast.Ident:
		return jen.Id(x.Name), nil

	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			return nil, unsupportedExpr(e)
		}
		importPath, ok := t.imports[pkg.Name]
		if !ok {
			return nil, fmt.Errorf("unknown package qualifier %q in %q", pkg.Name, types.ExprString(e))
		}
		return jen.Qual(importPath, x.Sel.Name), nil

	case *ast.StarExpr:
		inner, err := t.code(x.X)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(inner), nil

	case *ast.ParenExpr:
		inner, err := t.code(x.X)
		if err != nil {
			return nil, err
		}
		return jen.Parens(inner), nil

	case *ast.ArrayType:
		elem, err := t.code(x.Elt)
		if err != nil {
			return nil, err
		}
		if x.Len == nil {
			return jen.Index().Add(elem), nil
		}
		if _, ok := x.Len.(*ast.Ellipsis); ok {
			return nil, unsupportedExpr(e)
		}
		length, err := t.arrayLen(x.Len)
		if err != nil {
			return nil, err
		}
		return jen.Index(length).Add(elem), nil

	case *ast.MapType:
		key, err := t.code(x.Key)
		if err != nil {
			return nil, err
		}
		val, err := t.code(x.Value)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(val), nil

	case *ast.ChanType:
		val, err := t.code(x.Value)
		if err != nil {
			return nil, err
		}
		switch x.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(val), nil
		case ast.RECV:
			return jen.Op("<-").Chan().Add(val), nil
		default:
			return jen.Chan().Add(val), nil
		}

	case *ast.FuncType:
		return t.funcType(x)

	case *ast.IndexExpr:
		base, err := t.code(x.X)
		if err != nil {
			return nil, err
		}
		arg, err := t.code(x.Index)
		if err != nil {
			return nil, err
		}
		return base.Types(arg), nil

	case *ast.IndexListExpr:
		base, err := t.code(x.X)
		if err != nil {
			return nil, err
		}
		args, err := t.list(x.Indices)
		if err != nil {
			return nil, err
		}
		return base.Types(args...), nil

	case *ast.InterfaceType:
		if x.Methods == nil || len(x.Methods.List) == 0 {
			return jen.Interface(), nil
		}
		return nil, unsupportedExpr(e)

	case *ast.StructType:
		if x.Fields == nil || len(x.Fields.List) == 0 {
			return jen.Struct(), nil
		}
		return nil, unsupportedExpr(e)

	// Constraint syntax: ~int | ~string
	case *ast.UnaryExpr:
		if x.Op != token.TILDE {
			return nil, unsupportedExpr(e)
		}
		inner, err := t.code(x.X)
		if err != nil {
			return nil, err
		}
		return jen.Op("~").Add(inner), nil

	case *ast.BinaryExpr:
		if x.Op != token.OR {
			return nil, unsupportedExpr(e)
		}
		left, err := t.code(x.X)
		if err != nil {
			return nil, err
		}
		right, err := t.code(x.Y)
		if err != nil {
			return nil, err
		}
		return left.Op("|").Add(right), nil
	}

	return nil, unsupportedExpr(e)
}

func (t typeEmitter) arrayLen(e ast.Expr) (*jen.Statement, error) {
	switch x := e.(type) {
	case *ast.BasicLit:
		if x.Kind != token.INT {
			return nil, unsupportedExpr(e)
		}
		return jen.Id(x.Value), nil
	case *ast.Ident, *ast.SelectorExpr:
		return t.code(x)
	}
	return nil, unsupportedExpr(e)
}

func (t typeEmitter) funcType(f *ast.FuncType) (*jen.Statement, error) {
	params, err := t.fieldTypes(f.Params)
	if err != nil {
		return nil, err
	}
	results, err := t.fieldTypes(f.Results)
	if err != nil {
		return nil, err
	}

	code := jen.Func().Params(params...)
	switch len(results) {
	case 0:
	case 1:
		code.Add(results[0])
	default:
		code.Params(results...)
	}
	return code, nil
}

// fieldTypes flattens a parameter list to its types, dropping parameter names.
func (t typeEmitter) fieldTypes(fields *ast.FieldList) ([]jen.Code, error) {
	if fields == nil {
		return nil, nil
	}
	var out []jen.Code
	for _, field := range fields.List {
		var (
			code *jen.Statement
			err  error
		)
		if ellipsis, ok := field.Type.(*ast.Ellipsis); ok {
			code, err = t.code(ellipsis.Elt)
			if err == nil {
				code = jen.Op("...").Add(code)
			}
		} else {
			code, err = t.code(field.Type)
		}
		if err != nil {
			return nil, err
		}

		repeat := len(field.Names)
		if repeat == 0 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			out = append(out, code)
		}
	}
	return out, nil
}

func (t typeEmitter) list(exprs []ast.Expr) ([]jen.Code, error) {
	out := make([]jen.Code, 0, len(exprs))
	for _, e := range exprs {
		code, err := t.code(e)
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}

func unsupportedExpr(e ast.Expr) error {
	return fmt.Errorf("unsupported type expression %q", types.ExprString(e))
}

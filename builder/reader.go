package builder

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// Read validates raw and returns the descriptor the synthesizer consumes.
//
// Only KindStruct (or an empty Kind) is accepted; every other kind yields an
// UnsupportedShapeError. Positional fields (empty name) and blank fields ("_")
// are dropped. All remaining problems are collected and reported together as
// an InvalidDescriptorError.
func Read(raw RawType) (TypeDescriptor, error) {
	kind := raw.Kind
	if kind == "" {
		kind = KindStruct
	}
	if kind != KindStruct {
		return TypeDescriptor{}, UnsupportedShapeError{Type: raw.Name, Kind: kind}
	}

	var problems []string
	problemf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !token.IsIdentifier(raw.Name) {
		problemf("type name %q is not a Go identifier", raw.Name)
	}

	descriptor := TypeDescriptor{Name: raw.Name}
	emitter := typeEmitter{imports: raw.Imports}
	usedQualifiers := map[string]struct{}{}

	checkType := func(owner, expr string) {
		if strings.TrimSpace(expr) == "" {
			problemf("%s: missing type", owner)
			return
		}
		parsed, err := parseTypeExpr(expr)
		if err != nil {
			problemf("%s: %v", owner, err)
			return
		}
		if _, err := emitter.code(parsed); err != nil {
			problemf("%s: %v", owner, err)
			return
		}
		for _, q := range qualifiers(parsed) {
			usedQualifiers[q] = struct{}{}
		}
	}

	seenParams := make(map[string]struct{}, len(raw.TypeParams))
	for _, param := range raw.TypeParams {
		owner := "type parameter " + strconv.Quote(param.Name)
		switch {
		case !token.IsIdentifier(param.Name) || param.Name == "_":
			problemf("%s: not a usable Go identifier", owner)
		case isReservedIdent(param.Name):
			problemf("%s: name is used by the generated methods", owner)
		}
		if _, dup := seenParams[param.Name]; dup {
			problemf("%s: declared twice", owner)
		}
		seenParams[param.Name] = struct{}{}

		checkType(owner, param.Constraint)
		descriptor.TypeParams = append(descriptor.TypeParams, TypeParam{
			Name:       param.Name,
			Constraint: strings.TrimSpace(param.Constraint),
		})
	}

	setterOwners := make(map[string]string, len(raw.Fields))
	for _, field := range raw.Fields {
		if field.Name == "" || field.Name == "_" {
			continue
		}

		owner := "field " + strconv.Quote(field.Name)
		if !token.IsIdentifier(field.Name) {
			problemf("%s: not a Go identifier", owner)
			continue
		}

		setter := setterName(field.Name)
		if _, reserved := reservedMethods[setter]; reserved {
			problemf("%s: setter %s collides with a builder method", owner, setter)
		}
		if previous, dup := setterOwners[setter]; dup {
			problemf("%s: setter %s already generated for field %q", owner, setter, previous)
		} else {
			setterOwners[setter] = field.Name
		}

		checkType(owner, field.Type)
		descriptor.Fields = append(descriptor.Fields, FieldDescriptor{
			Name: field.Name,
			Type: strings.TrimSpace(field.Type),
		})
	}

	if len(problems) > 0 {
		return TypeDescriptor{}, InvalidDescriptorError{Type: raw.Name, Problems: problems}
	}

	if len(usedQualifiers) > 0 {
		descriptor.Imports = make(map[string]string, len(usedQualifiers))
		for q := range usedQualifiers {
			descriptor.Imports[q] = raw.Imports[q]
		}
	}
	return descriptor, nil
}

func isReservedIdent(name string) bool {
	_, ok := reservedIdents[name]
	return ok
}

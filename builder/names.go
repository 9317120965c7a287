package builder

import (
	"unicode"
	"unicode/utf8"
)

const (
	builderSuffix = "Builder"
	slotPrefix    = "slot"

	receiverName = "b"
	setterParam  = "v"
	missingVar   = "missing"
)

// reservedMethods are the builder methods a setter must not shadow.
var reservedMethods = map[string]struct{}{
	"Build":     {},
	"MustBuild": {},
	"Missing":   {},
}

// reservedIdents are names the generated method bodies declare.
var reservedIdents = map[string]struct{}{
	receiverName: {},
	setterParam:  {},
	missingVar:   {},
	"err":        {},
}

// BuilderName returns the name of the builder generated for typeName.
func BuilderName(typeName string) string { return typeName + builderSuffix }

// exportName upper-cases the first rune (executable -> Executable).
func exportName(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func setterName(field string) string { return exportName(field) }

func slotName(field string) string { return slotPrefix + exportName(field) }

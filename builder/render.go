package builder

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"
)

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "Code generated by buildergen; DO NOT EDIT."

// FileOptions controls the file-level parts of a rendered artifact.
type FileOptions struct {
	// Package is the package clause of the generated file.
	Package string

	// Source, if set, is recorded in the header (use slash-separated paths).
	Source string
}

// RenderFile writes one gofmt'ed Go file holding every artifact, in order.
func RenderFile(w io.Writer, opts FileOptions, artifacts ...*Artifact) error {
	if strings.TrimSpace(opts.Package) == "" {
		return errors.New("builder: render: package name is required")
	}
	if len(artifacts) == 0 {
		return errors.New("builder: render: nothing to render")
	}

	fingerprint, err := Fingerprint(artifacts...)
	if err != nil {
		return fmt.Errorf("builder: render: %w", err)
	}

	file := jen.NewFile(opts.Package)
	file.HeaderComment(GeneratedHeader)
	if opts.Source != "" {
		file.HeaderComment("Source: " + opts.Source)
	}
	file.HeaderComment("Descriptor-SHA256: " + fingerprint)

	registerImports(file, artifacts)

	for _, artifact := range artifacts {
		for _, d := range artifact.decls {
			for _, line := range strings.Split(d.doc, "\n") {
				file.Comment(line)
			}
			file.Add(d.code)
			file.Line()
		}
	}

	if err := file.Render(w); err != nil {
		return fmt.Errorf("builder: render %s: %w", opts.Package, err)
	}
	return nil
}

// Fingerprint hashes the descriptors behind the artifacts, in order.
func Fingerprint(artifacts ...*Artifact) (string, error) {
	hash := sha256.New()
	for _, artifact := range artifacts {
		sum, err := artifact.Descriptor.Fingerprint()
		if err != nil {
			return "", err
		}
		_, _ = io.WriteString(hash, sum)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// registerImports keeps the identifiers the source used for each package.
// When two artifacts disagree on an identifier the first one wins and
// jennifer picks a fresh alias for the other path.
func registerImports(file *jen.File, artifacts []*Artifact) {
	byIdent := map[string]string{}
	byPath := map[string]string{}

	for _, artifact := range artifacts {
		if _, ok := byPath[artifact.RuntimeImport]; !ok {
			byPath[artifact.RuntimeImport] = "buildkit"
			byIdent["buildkit"] = artifact.RuntimeImport
		}

		idents := make([]string, 0, len(artifact.Descriptor.Imports))
		for ident := range artifact.Descriptor.Imports {
			idents = append(idents, ident)
		}
		sort.Strings(idents)

		for _, ident := range idents {
			importPath := artifact.Descriptor.Imports[ident]
			if _, taken := byIdent[ident]; taken {
				continue
			}
			if _, known := byPath[importPath]; known {
				continue
			}
			byIdent[ident] = importPath
			byPath[importPath] = ident
		}
	}

	paths := make([]string, 0, len(byPath))
	for importPath := range byPath {
		paths = append(paths, importPath)
	}
	sort.Strings(paths)

	for _, importPath := range paths {
		ident := byPath[importPath]
		if importDefaultIdent(importPath) == ident {
			file.ImportName(importPath, ident)
		} else {
			file.ImportAlias(importPath, ident)
		}
	}
}

package main

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sghaida/buildergen/builder"
	"github.com/sghaida/buildergen/internal/logger"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		in      input
		pkg     string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the builders for one Go or schema file",
		Example: "  //go:generate buildergen generate --type Command\n" +
			"  buildergen generate --schema types.yaml --package command --out command_builder.gen.go",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.src == "" && in.schema == "" {
				in.src = a.getenv("GOFILE")
			}
			if pkg == "" {
				pkg = a.getenv("GOPACKAGE")
			}
			return a.generate(cmd, in, pkg, outPath)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.src, "src", "", "Go source file (defaults to $GOFILE)")
	flags.StringVar(&in.schema, "schema", "", "YAML or JSON schema file")
	flags.StringArrayVar(&in.types, "type", nil, "type to generate a builder for (repeatable, default: every marked type)")
	flags.StringVar(&pkg, "package", "", "package of the generated file (defaults to $GOPACKAGE, then the input's package)")
	flags.StringVarP(&outPath, "out", "o", "", "output file (default <input>_builder.gen.go)")
	return cmd
}

func (a *app) generate(cmd *cobra.Command, in input, pkg, outPath string) error {
	log := logger.FromContext(cmd.Context())

	src, err := in.load(a.fs, a.cfg.Scan.Marker)
	if err != nil {
		return err
	}
	if pkg == "" {
		pkg = src.pkg
	}
	if !token.IsIdentifier(pkg) {
		return usagef("--package %q is not a Go identifier (set --package or declare one in the schema)", pkg)
	}
	if outPath == "" {
		outPath = defaultOutPath(src.path, a.cfg.Generate.FileSuffix)
	}

	tds, err := descriptors(src.rawList)
	if err != nil {
		return err
	}

	code, err := a.render(pkg, filepath.ToSlash(filepath.Base(src.path)), tds)
	if err != nil {
		return err
	}

	written, err := writeIfChanged(a.fs, outPath, code)
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if !written {
		log.Debug("unchanged", "file", outPath)
		return nil
	}
	log.Info("generated", "file", outPath, "types", typeNames(tds))
	return nil
}

// render synthesizes every descriptor into one gofmt'ed file.
func (a *app) render(pkg, source string, tds []builder.TypeDescriptor) ([]byte, error) {
	synth := builder.Synthesizer{RuntimeImport: a.cfg.Generate.RuntimeImport}

	artifacts := make([]*builder.Artifact, 0, len(tds))
	for _, td := range tds {
		artifact, err := synth.Synthesize(td)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	var buf bytes.Buffer
	if err := builder.RenderFile(&buf, builder.FileOptions{Package: pkg, Source: source}, artifacts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeIfChanged leaves an identical file alone so its mtime stays put.
func writeIfChanged(fs afero.Fs, path string, data []byte) (bool, error) {
	if current, err := afero.ReadFile(fs, path); err == nil && bytes.Equal(current, data) {
		return false, nil
	}
	if err := writeFileAtomic(fs, path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func typeNames(tds []builder.TypeDescriptor) string {
	names := make([]string, 0, len(tds))
	for _, td := range tds {
		names = append(names, td.Name)
	}
	return strings.Join(names, ",")
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sghaida/buildergen/builder"
)

// input selects where descriptors come from: a Go file or a schema file.
type input struct {
	src    string
	schema string
	types  []string
}

// loaded is what an input resolved to.
type loaded struct {
	path    string
	pkg     string
	rawList []builder.RawType
}

func (in input) validate() error {
	var missing []string

	switch {
	case in.src != "" && in.schema != "":
		return usagef("use only one of --src or --schema")
	case in.src == "" && in.schema == "":
		missing = append(missing, "--src (or $GOFILE) or --schema")
	}
	for i, name := range in.types {
		if strings.TrimSpace(name) == "" {
			missing = append(missing, fmt.Sprintf("--type[%d]", i))
		}
	}

	if len(missing) > 0 {
		return usagef("missing or invalid flags: %v", missing)
	}
	return nil
}

// load reads the input and returns the raw types it names. With no --type,
// a Go file yields every marked type and a schema every declared type.
func (in input) load(fs afero.Fs, marker string) (loaded, error) {
	if err := in.validate(); err != nil {
		return loaded{}, err
	}
	if in.schema != "" {
		return in.loadSchema(fs)
	}
	return in.loadGo(fs, marker)
}

func (in input) loadGo(fs afero.Fs, marker string) (loaded, error) {
	src, err := afero.ReadFile(fs, in.src)
	if err != nil {
		return loaded{}, fmt.Errorf("read source: %w", err)
	}
	out := loaded{path: in.src}

	if len(in.types) == 0 {
		scanned, err := builder.ScanGoSource(in.src, src, marker)
		if err != nil {
			return loaded{}, err
		}
		if len(scanned.Types) == 0 {
			return loaded{}, fmt.Errorf("%s: no type carries %q and no --type was given", in.src, marker)
		}
		out.pkg = scanned.Package
		out.rawList = scanned.Types
		return out, nil
	}

	if out.pkg, err = builder.PackageName(in.src, src); err != nil {
		return loaded{}, err
	}
	for _, name := range in.types {
		raw, err := builder.ParseGoSource(in.src, src, name)
		if err != nil {
			return loaded{}, err
		}
		out.rawList = append(out.rawList, raw)
	}
	return out, nil
}

func (in input) loadSchema(fs afero.Fs) (loaded, error) {
	data, err := afero.ReadFile(fs, in.schema)
	if err != nil {
		return loaded{}, fmt.Errorf("read schema: %w", err)
	}
	schema, err := builder.ParseSchema(data)
	if err != nil {
		return loaded{}, fmt.Errorf("%s: %w", in.schema, err)
	}

	out := loaded{path: in.schema, pkg: schema.Package}
	if len(in.types) == 0 {
		out.rawList = schema.RawTypes()
		return out, nil
	}
	for _, name := range in.types {
		raw, ok := schema.Lookup(name)
		if !ok {
			return loaded{}, builder.TypeNotFoundError{Type: name, File: in.schema}
		}
		out.rawList = append(out.rawList, raw)
	}
	return out, nil
}

// descriptors validates every raw type. Nothing is returned unless all pass.
func descriptors(raws []builder.RawType) ([]builder.TypeDescriptor, error) {
	out := make([]builder.TypeDescriptor, 0, len(raws))
	for _, raw := range raws {
		td, err := builder.Read(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, td)
	}
	return out, nil
}

// defaultOutPath derives "<dir>/<base>_builder.gen.go" from the input path.
func defaultOutPath(inputPath, suffix string) string {
	dir, base := filepath.Split(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+suffix)
}

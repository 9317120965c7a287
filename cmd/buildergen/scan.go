package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sghaida/buildergen/builder"
	"github.com/sghaida/buildergen/internal/logger"
)

func (a *app) scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Generate builders for every marked type under root",
		Long: "scan walks root (default \".\"), parses every Go file matching the include " +
			"globs and none of the exclude globs, and writes one generated file per " +
			"package directory that declares at least one marked type.",
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return a.scan(cmd, root)
		},
	}

	flags := cmd.Flags()
	flags.String("marker", "", "doc comment marker selecting types (default \"+buildergen:builder\")")
	flags.String("output", "", "generated file name per directory (default \"zz_generated.builder.go\")")
	flags.StringSlice("include", nil, "globs of files to parse, relative to root")
	flags.StringSlice("exclude", nil, "globs of files to skip, relative to root")
	return cmd
}

// pkgDir collects the marked types of one directory.
type pkgDir struct {
	pkg     string
	sources []string
	raws    []builder.RawType
}

func (a *app) scan(cmd *cobra.Command, root string) error {
	log := logger.FromContext(cmd.Context())
	cfg := a.cfg.Scan

	excludes := append([]string{"**/" + cfg.Output}, cfg.Exclude...)
	files, err := discover(a.fs, root, cfg.Include, excludes)
	if err != nil {
		return err
	}

	dirs := map[string]*pkgDir{}
	for _, file := range files {
		src, err := afero.ReadFile(a.fs, file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		result, err := builder.ScanGoSource(file, src, cfg.Marker)
		if err != nil {
			return err
		}
		if len(result.Types) == 0 {
			log.Debug("skipped", "file", file, "reason", "no marked types")
			continue
		}

		dir := filepath.Dir(file)
		entry, ok := dirs[dir]
		if !ok {
			entry = &pkgDir{pkg: result.Package}
			dirs[dir] = entry
		}
		if entry.pkg != result.Package {
			return fmt.Errorf("%s: package %s conflicts with package %s in the same directory", file, result.Package, entry.pkg)
		}
		entry.sources = append(entry.sources, filepath.ToSlash(filepath.Base(file)))
		entry.raws = append(entry.raws, result.Types...)
	}

	dirNames := make([]string, 0, len(dirs))
	for dir := range dirs {
		dirNames = append(dirNames, dir)
	}
	sort.Strings(dirNames)

	// Validate everything before the first write.
	pending := make([][]builder.TypeDescriptor, len(dirNames))
	for i, dir := range dirNames {
		tds, err := descriptors(dirs[dir].raws)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
		pending[i] = tds
	}

	for i, dir := range dirNames {
		entry := dirs[dir]
		code, err := a.render(entry.pkg, strings.Join(entry.sources, ", "), pending[i])
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}

		outPath := filepath.Join(dir, cfg.Output)
		written, err := writeIfChanged(a.fs, outPath, code)
		if err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		if !written {
			log.Debug("unchanged", "file", outPath)
			continue
		}
		log.Info("generated", "file", outPath, "types", typeNames(pending[i]))
	}

	log.Info("scan complete", "root", root, "files", len(files), "packages", len(dirNames))
	return nil
}

// discover walks root and returns the files matching any include glob and no
// exclude glob, sorted. Globs match the slash-separated path relative to root;
// an exclude also matches the bare file name.
func discover(fsys afero.Fs, root string, includes, excludes []string) ([]string, error) {
	for _, pattern := range append(append([]string{}, includes...), excludes...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, usagef("invalid glob pattern %q", pattern)
		}
	}

	var files []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(includes, rel) || matchesExclude(excludes, rel, filepath.Base(path)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}

func matchesExclude(patterns []string, rel, base string) bool {
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, rel) || doublestar.MatchUnvalidated(pattern, base) {
			return true
		}
	}
	return false
}

// Package config loads buildergen settings from defaults, an optional YAML
// file, BUILDERGEN_* environment variables and command-line overrides, in
// that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/sghaida/buildergen/builder"
)

type Config struct {
	Log      LogConfig      `koanf:"log"`
	Generate GenerateConfig `koanf:"generate"`
	Scan     ScanConfig     `koanf:"scan"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type GenerateConfig struct {
	// RuntimeImport is the import path of the buildkit package generated code uses.
	RuntimeImport string `koanf:"runtime_import"`

	// FileSuffix replaces ".go" in the source file name to form the output name.
	FileSuffix string `koanf:"file_suffix"`
}

type ScanConfig struct {
	Marker  string   `koanf:"marker"`
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`
	Output  string   `koanf:"output"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Generate: GenerateConfig{
			RuntimeImport: builder.DefaultRuntimeImport,
			FileSuffix:    "_builder.gen.go",
		},
		Scan: ScanConfig{
			Marker:  builder.DefaultMarker,
			Include: []string{"**/*.go"},
			Exclude: []string{
				"**/*_test.go",
				"**/*.gen.go",
				"**/zz_generated.*.go",
				"**/vendor/**",
				"**/testdata/**",
			},
			Output: "zz_generated.builder.go",
		},
	}
}

// Validate collects every invalid setting before failing.
func (c *Config) Validate() error {
	var problems []string

	switch c.Log.Level {
	case "debug", "info", "warn", "error", "disabled":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q (want debug, info, warn, error or disabled)", c.Log.Level))
	}
	if strings.TrimSpace(c.Generate.RuntimeImport) == "" {
		problems = append(problems, "generate.runtime_import")
	}
	if !strings.HasSuffix(c.Generate.FileSuffix, ".go") {
		problems = append(problems, fmt.Sprintf("generate.file_suffix %q (must end in .go)", c.Generate.FileSuffix))
	}
	if strings.TrimSpace(c.Scan.Marker) == "" {
		problems = append(problems, "scan.marker")
	}
	if len(c.Scan.Include) == 0 {
		problems = append(problems, "scan.include (must have at least 1)")
	}
	if !strings.HasSuffix(c.Scan.Output, ".go") || strings.ContainsAny(c.Scan.Output, `/\`) {
		problems = append(problems, fmt.Sprintf("scan.output %q (must be a .go file name)", c.Scan.Output))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config missing or invalid fields: %v", problems)
	}
	return nil
}

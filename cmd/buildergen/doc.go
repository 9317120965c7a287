// Command buildergen generates fluent builders for Go struct types.
//
// For a struct
//
//	// +buildergen:builder
//	type Command struct {
//		Executable string
//		Args       []string
//		Env        []string
//		CurrentDir string
//	}
//
// it writes a CommandBuilder that stages each field in an optional slot:
//
//	cmd, err := NewCommandBuilder().
//		Executable("ls").
//		Args([]string{"-la"}).
//		Env(nil).
//		CurrentDir("/tmp").
//		Build()
//
// Build fails with a buildkit.IncompleteError naming every field that was
// never set, so a forgotten field is caught where the value is assembled
// instead of surfacing later as a zero value. Setters overwrite, Build can be
// called any number of times, and MustBuild panics instead of returning the
// error. Interface types and other non-struct declarations are rejected.
//
// Commands
//
//	buildergen generate [--src file.go] [--type T ...] [--package p] [--out file]
//	buildergen generate --schema types.yaml [--type T ...] [--package p] [--out file]
//	buildergen scan [root] [--marker m] [--include glob ...] [--exclude glob ...]
//	buildergen describe [--src file.go | --schema types.yaml] [--type T ...]
//
// Under go generate, --src defaults to $GOFILE and --package to $GOPACKAGE:
//
//	//go:generate go run github.com/sghaida/buildergen/cmd/buildergen generate --type Command
//
// Without --type, every type whose doc comment carries the marker is used.
// The output defaults to <file>_builder.gen.go next to the input. scan writes
// one zz_generated.builder.go per package directory instead.
//
// Schema files describe types without Go source:
//
//	package: command
//	imports:
//	  - path: time
//	types:
//	  - name: Command
//	    fields:
//	      - name: Executable
//	        type: string
//	      - name: Timeout
//	        type: time.Duration
//
// Configuration
//
// Settings come from defaults, then the --config YAML file, then BUILDERGEN_*
// environment variables (BUILDERGEN_SCAN_EXCLUDE="a/**,b/**" sets
// scan.exclude), then flags:
//
//	log:
//	  level: info          # debug, info, warn, error, disabled
//	  json: false
//	generate:
//	  runtime_import: github.com/sghaida/buildergen/buildkit
//	  file_suffix: _builder.gen.go
//	scan:
//	  marker: +buildergen:builder
//	  include: ["**/*.go"]
//	  exclude: ["**/*_test.go", "**/*.gen.go", "**/zz_generated.*.go", "**/vendor/**", "**/testdata/**"]
//	  output: zz_generated.builder.go
//
// Exit status is 0 on success, 1 when generation fails (nothing is written)
// and 2 on a usage error.
//
// Generated files start with
//
//	// Code generated by buildergen; DO NOT EDIT.
//	// Source: command.go
//	// Descriptor-SHA256: <hash of the type descriptors>
//
// and are only rewritten when their content changes.
package main

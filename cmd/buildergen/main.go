package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sghaida/buildergen/internal/config"
	"github.com/sghaida/buildergen/internal/logger"
)

// app carries the process dependencies so tests can swap them.
type app struct {
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	environ func() []string

	cfg *config.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the exit status:
// 0 on success, 1 when generation fails, 2 on a usage error.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		fs:      afero.NewOsFs(),
		stdout:  stdout,
		stderr:  stderr,
		getenv:  os.Getenv,
		environ: os.Environ,
	}
	return a.run(args)
}

func (a *app) run(args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(a.stderr, "buildergen:", err)

		var usage usageError
		if errors.As(err, &usage) {
			_, _ = fmt.Fprintln(a.stderr, "run 'buildergen --help' for usage")
			return 2
		}
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "buildergen",
		Short: "Generate fluent builders for Go struct types",
		Long: "buildergen reads struct declarations from Go source or a schema file and " +
			"writes a companion <Type>Builder with one setter per field and a Build " +
			"method that fails until every field is set.",
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return usagef("missing command")
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("log-level", "", "log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "log as JSON")
	flags.String("runtime-import", "", "import path of the buildkit runtime package")

	root.AddCommand(
		a.generateCmd(),
		a.scanCmd(),
		a.describeCmd(),
	)
	return root
}

// overrideKeys maps flags to the config keys they override when set.
var overrideKeys = map[string]string{
	"log-level":      "log.level",
	"log-json":       "log.json",
	"runtime-import": "generate.runtime_import",
	"marker":         "scan.marker",
	"output":         "scan.output",
	"include":        "scan.include",
	"exclude":        "scan.exclude",
}

// setup loads the configuration and puts a logger on the command context.
func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]any{}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := overrideKeys[f.Name]
		if !ok || !f.Changed {
			return
		}
		if sv, isSlice := f.Value.(pflag.SliceValue); isSlice {
			overrides[key] = sv.GetSlice()
			return
		}
		overrides[key] = f.Value.String()
	})

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Loader{Fs: a.fs, Environ: a.environ}.Load(configPath, overrides)
	if err != nil {
		return usageError{err: err}
	}
	a.cfg = cfg

	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Output:     a.stderr,
		JSON:       cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

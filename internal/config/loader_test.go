package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/buildergen/builder"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestLoader_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Loader{Fs: afero.NewMemMapFs(), Environ: environ()}.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, builder.DefaultRuntimeImport, cfg.Generate.RuntimeImport)
	assert.Equal(t, builder.DefaultMarker, cfg.Scan.Marker)
}

func TestLoader_Precedence(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "buildergen.yaml", []byte(`
log:
  level: debug
generate:
  file_suffix: _gen.go
scan:
  marker: "+gen:builder"
  exclude:
    - "legacy/**"
`), 0o644))

	loader := Loader{
		Fs: fs,
		Environ: environ(
			"BUILDERGEN_SCAN_MARKER=+env:builder",
			"BUILDERGEN_GENERATE_RUNTIME_IMPORT=example.com/rt",
			"HOME=/root",
		),
	}

	cfg, err := loader.Load("buildergen.yaml", map[string]any{"log.level": "warn"})
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level, "override beats file")
	assert.Equal(t, "_gen.go", cfg.Generate.FileSuffix, "file beats default")
	assert.Equal(t, "+env:builder", cfg.Scan.Marker, "env beats file")
	assert.Equal(t, "example.com/rt", cfg.Generate.RuntimeImport)
	assert.Equal(t, []string{"legacy/**"}, cfg.Scan.Exclude)
	assert.Equal(t, Default().Scan.Include, cfg.Scan.Include)
}

func TestLoader_EnvCommaLists(t *testing.T) {
	t.Parallel()

	loader := Loader{
		Fs:      afero.NewMemMapFs(),
		Environ: environ("BUILDERGEN_SCAN_EXCLUDE=gen/**, ,**/mocks/**", "BUILDERGEN_LOG_JSON=true"),
	}

	cfg, err := loader.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"gen/**", "**/mocks/**"}, cfg.Scan.Exclude)
	assert.True(t, cfg.Log.JSON)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("log: [\n"), 0o644))

	testCases := []struct {
		name      string
		path      string
		env       []string
		overrides map[string]any
		wantErr   string
	}{
		{name: "missing file", path: "nope.yaml", wantErr: "read config"},
		{name: "bad yaml", path: "bad.yaml", wantErr: "parse config bad.yaml"},
		{name: "bad level", env: []string{"BUILDERGEN_LOG_LEVEL=loud"}, wantErr: `log.level "loud"`},
		{name: "bad output", overrides: map[string]any{"scan.output": "out/x.go"}, wantErr: "scan.output"},
		{
			name:      "all problems together",
			overrides: map[string]any{"generate.file_suffix": ".txt", "scan.marker": ""},
			wantErr:   "generate.file_suffix \".txt\" (must end in .go) scan.marker",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Loader{Fs: fs, Environ: environ(tc.env...)}.Load(tc.path, tc.overrides)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestTransformEnvKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want string
	}{
		{in: "BUILDERGEN_SCAN_MARKER", want: "scan.marker"},
		{in: "BUILDERGEN_GENERATE_RUNTIME_IMPORT", want: "generate.runtime_import"},
		{in: "BUILDERGEN_SCAN__OUTPUT", want: "scan.output"},
		{in: "BUILDERGEN_DEBUG", want: ""},
	}

	for _, tc := range testCases {
		got, _ := transformEnvKey(tc.in, "x")
		assert.Equal(t, tc.want, got, tc.in)
	}
}

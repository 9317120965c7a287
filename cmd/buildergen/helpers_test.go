package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const commandGo = `package command

// Command describes a process invocation.
//
// +buildergen:builder
type Command struct {
	Executable string
	Args       []string
	Env        []string
	CurrentDir string
}

type Shape interface{ Area() float64 }
`

const commandSchema = `package: command
types:
  - name: Command
    fields:
      - name: Executable
        type: string
      - name: Args
        type: "[]string"
`

// harness runs the CLI against an in-memory filesystem.
type harness struct {
	t      *testing.T
	fs     afero.Fs
	env    map[string]string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{t: t, fs: afero.NewMemMapFs(), env: map[string]string{}}
}

func (h *harness) run(args ...string) int {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()

	a := &app{
		fs:      h.fs,
		stdout:  &h.stdout,
		stderr:  &h.stderr,
		getenv:  func(key string) string { return h.env[key] },
		environ: func() []string { return nil },
	}
	return a.run(args)
}

func (h *harness) write(path, content string) {
	h.t.Helper()
	require.NoError(h.t, h.fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(h.t, afero.WriteFile(h.fs, path, []byte(content), 0o644))
}

func (h *harness) read(path string) string {
	h.t.Helper()
	data, err := afero.ReadFile(h.fs, path)
	require.NoError(h.t, err, "stderr: %s", h.stderr.String())
	return string(data)
}

func (h *harness) exists(path string) bool {
	h.t.Helper()
	ok, err := afero.Exists(h.fs, path)
	require.NoError(h.t, err)
	return ok
}

// failingFs fails the selected operations and delegates the rest.
type failingFs struct {
	afero.Fs
	failChmod  bool
	failRename bool
}

func (f failingFs) Chmod(name string, mode os.FileMode) error {
	if f.failChmod {
		return &os.PathError{Op: "chmod", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Chmod(name, mode)
}

func (f failingFs) Rename(oldname, newname string) error {
	if f.failRename {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, so readers never observe partial writes.
func writeFileAtomic(fs afero.Fs, targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := afero.TempFile(fs, targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = fs.Remove(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = fs.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return fs.Rename(tmpPath, targetPath)
}

package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer stores artifacts on disk. Each write lands in a temporary file
// next to the target and is renamed into place, so readers never observe
// a partial artifact.
type Writer struct {
	perm os.FileMode
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{perm: 0644}
}

// WriteArtifact atomically replaces the file at path with data, creating
// parent directories as needed. A directory path receives search_index.js.
func (w *Writer) WriteArtifact(path string, data []byte) error {
	path = PathFromLocation(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ArtifactName)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	abort := func() { os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		abort()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		abort()
		return err
	}
	if err := os.Chmod(tmp.Name(), w.perm); err != nil {
		abort()
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		abort()
		return fmt.Errorf("commit %s: %w", path, err)
	}
	return nil
}

package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	apperrors "leetdl/pkg/errors"
)

// Manager owns every write under the output root
type Manager struct {
	outputDir    string
	dirsCreated  map[string]bool
	filesWritten int
	bytesWritten int64
	mu           sync.RWMutex
}

// NewManager creates the output root if needed and returns a manager for it
func NewManager(outputDir string) (*Manager, error) {
	if outputDir == "" {
		return nil, apperrors.New(apperrors.ErrorTypeFilesystem, 0, "output directory is empty")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrorTypeFilesystem, err, "failed to create output directory %s", outputDir)
	}

	return &Manager{
		outputDir:   outputDir,
		dirsCreated: make(map[string]bool),
	}, nil
}

// resolve joins elems under the output root and rejects anything that
// would land outside it
func (m *Manager) resolve(elems ...string) (string, error) {
	rel := filepath.Join(elems...)
	if rel == "" || rel == "." {
		return m.outputDir, nil
	}
	if !filepath.IsLocal(rel) {
		return "", apperrors.New(apperrors.ErrorTypeFilesystem, 0, "path %q escapes the output directory", rel)
	}
	return filepath.Join(m.outputDir, rel), nil
}

// EnsureDir creates a directory under the output root. Calling it again for
// the same path is a no-op.
func (m *Manager) EnsureDir(elems ...string) (string, error) {
	dir, err := m.resolve(elems...)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.Wrap(apperrors.ErrorTypeFilesystem, err, "failed to create directory %s", dir)
	}

	m.mu.Lock()
	m.dirsCreated[dir] = true
	m.mu.Unlock()

	return dir, nil
}

// WriteFile writes data to a file under the output root, replacing any
// existing file
func (m *Manager) WriteFile(data []byte, elems ...string) (string, error) {
	return m.Save(bytes.NewReader(data), elems...)
}

// Save streams r into a file under the output root. The content goes to a
// temporary file in the same directory first and is renamed into place, so a
// failed write never leaves a truncated file behind.
func (m *Manager) Save(r io.Reader, elems ...string) (string, error) {
	filename, err := m.resolve(elems...)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(filename)

	out, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrorTypeFilesystem, err, "failed to create temporary file in %s", dir)
	}
	tempFile := out.Name()

	n, err := io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", apperrors.Wrap(apperrors.ErrorTypeFilesystem, err, "failed to write %s", filename)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return "", apperrors.Wrap(apperrors.ErrorTypeFilesystem, closeErr, "failed to close %s", filename)
	}
	if err := os.Chmod(tempFile, 0644); err != nil {
		os.Remove(tempFile)
		return "", apperrors.Wrap(apperrors.ErrorTypeFilesystem, err, "failed to set permissions on %s", filename)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return "", apperrors.Wrap(apperrors.ErrorTypeFilesystem, err, "failed to rename temporary file to %s", filename)
	}

	m.mu.Lock()
	m.filesWritten++
	m.bytesWritten += n
	m.mu.Unlock()

	return filename, nil
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// GetWrittenCount returns the number of files written by this manager
func (m *Manager) GetWrittenCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filesWritten
}

// GetBytesWritten returns the total size of the files written
func (m *Manager) GetBytesWritten() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bytesWritten
}

// GetDirCount returns the number of distinct directories ensured
func (m *Manager) GetDirCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.dirsCreated)
}

func (m *Manager) String() string {
	return fmt.Sprintf("storage(%s: %d files, %d bytes)", m.outputDir, m.GetWrittenCount(), m.GetBytesWritten())
}

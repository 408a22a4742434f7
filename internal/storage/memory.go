package storage

import (
	"fmt"
	"os"
	"path"
	"sort"
	"sync"
)

// Memory implements Provider backed by an in-process map. It exists so the
// content service can be exercised in tests without touching disk.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// List returns the names of files directly inside dir. A directory exists
// iff at least one file lives under it; otherwise os.ErrNotExist is
// returned, matching the FS provider.
func (m *Memory) List(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := path.Clean(dir) + "/"
	var out []string
	for p := range m.files {
		d, name := path.Split(p)
		if d == prefix {
			out = append(out, name)
		}
	}
	if out == nil {
		return nil, fmt.Errorf("storage: list %s: %w", dir, os.ErrNotExist)
	}
	sort.Strings(out)
	return out, nil
}

// Read returns the stored bytes for path.
func (m *Memory) Read(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("storage: read %s: %w", p, os.ErrNotExist)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Write stores content at path, silently overwriting.
func (m *Memory) Write(p string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(content))
	copy(cp, content)
	m.files[path.Clean(p)] = cp
	return nil
}

// Delete removes the file at path.
func (m *Memory) Delete(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := path.Clean(p)
	if _, ok := m.files[key]; !ok {
		return fmt.Errorf("storage: delete %s: %w", p, os.ErrNotExist)
	}
	delete(m.files, key)
	return nil
}

var (
	_ Provider = (*Memory)(nil)
	_ Provider = (*FS)(nil)
)

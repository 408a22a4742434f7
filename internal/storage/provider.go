// Package storage defines the content-directory file abstraction.
package storage

// Provider is the interface for content file operations. All paths are
// slash-separated and relative to the content root.
type Provider interface {
	// List returns the names of the regular files directly inside dir.
	// A missing directory surfaces as os.ErrNotExist.
	List(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent
	// directories as needed.
	Write(path string, content []byte) error
	// Delete removes the file at path. A missing target surfaces as
	// os.ErrNotExist.
	Delete(path string) error
}

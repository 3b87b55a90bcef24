package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var ErrInvalidName = errors.New("invalid artifact name")

// Artifact describes a file written to the artifact directory.
type Artifact struct {
	Name string
	Path string
	Size int64
}

// Store defines the interface for artifact storage.
type Store interface {
	Save(name string, r io.Reader) (*Artifact, error)
	Remove(name string) error
	Path(name string) string
}

// LocalStore implements Store using a local directory.
type LocalStore struct {
	mu  sync.Mutex
	dir string
}

// NewLocalStore creates a new LocalStore rooted at dir.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}

	return &LocalStore{dir: dir}, nil
}

// Dir returns the artifact directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Path returns where an artifact called name lives. With the default directory "."
// this is the bare name.
func (s *LocalStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save writes r to the artifact called name, replacing any previous artifact of that name.
// A partially written file is removed on failure.
func (s *LocalStore) Save(name string, r io.Reader) (*Artifact, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("closing file: %w", err)
	}

	return &Artifact{
		Name: name,
		Path: path,
		Size: size,
	}, nil
}

// Remove deletes an artifact. Removing a missing artifact is not an error.
func (s *LocalStore) Remove(name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

// checkName keeps artifacts inside the store directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

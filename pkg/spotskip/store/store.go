// Package store reads and writes the Spotlight volume configuration
// plist. The store is handled through an explicit handle rather than a
// package-level singleton so tests can point it at a fixture file.
//
// Only the Exclusions key is ever touched; every other key in the plist is
// carried through a read/write cycle unchanged, and the file keeps
// whatever serialization format (binary or XML) it had on disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"
)

// exclusionsKey is the plist key holding the exclusion path array.
const exclusionsKey = "Exclusions"

// ErrMalformed indicates the volume configuration could not be parsed or
// its Exclusions key has an unexpected shape. The store is never written
// after a malformed read.
var ErrMalformed = errors.New("volume configuration is malformed")

// Store is a handle on a volume configuration plist file.
type Store struct {
	path string
}

// New returns a store handle for the plist at path. The file is not
// touched until Read, Write, or Backup is called.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the plist path this store operates on.
func (s *Store) Path() string {
	return s.path
}

// Document is an in-memory copy of the volume configuration. It keeps all
// plist keys, not just Exclusions, plus the on-disk format so a write
// round-trips faithfully.
type Document struct {
	values map[string]interface{}
	format int
}

// Read parses the volume configuration from disk.
func (s *Store) Read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading volume configuration %s: %w", s.path, err)
	}

	var values map[string]interface{}
	format, err := plist.Unmarshal(data, &values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc := &Document{values: values, format: format}

	// Validate the Exclusions key up front so a malformed store is
	// rejected before anyone edits it.
	if _, err := doc.exclusions(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Exclusions returns the exclusion paths in store order. A missing
// Exclusions key is an empty list, as on a freshly indexed volume.
func (d *Document) Exclusions() []string {
	paths, _ := d.exclusions()
	return paths
}

func (d *Document) exclusions() ([]string, error) {
	raw, ok := d.values[exclusionsKey]
	if !ok {
		return []string{}, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array", ErrMalformed, exclusionsKey)
	}

	paths := make([]string, 0, len(items))
	for _, item := range items {
		p, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s contains a non-string entry", ErrMalformed, exclusionsKey)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// SetExclusions replaces the exclusion list.
func (d *Document) SetExclusions(paths []string) {
	items := make([]interface{}, len(paths))
	for i, p := range paths {
		items[i] = p
	}
	d.values[exclusionsKey] = items
}

// Write persists the document back to the store's path. The document is
// marshalled to a temporary file in the same directory and renamed over
// the original, so a failed write leaves the original file untouched.
func (s *Store) Write(doc *Document) error {
	data, err := plist.Marshal(doc.values, doc.format)
	if err != nil {
		return fmt.Errorf("encoding volume configuration: %w", err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing volume configuration: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing volume configuration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing volume configuration: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing volume configuration: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing volume configuration: %w", err)
	}
	return nil
}

// Package media holds the files packed alongside a collection.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var (
	// ErrDuplicateName is returned when a name is added twice with different content.
	ErrDuplicateName = errors.New("duplicate media name")

	// ErrInvalidName is returned for an empty name or one containing a path separator.
	ErrInvalidName = errors.New("invalid media name")
)

// Entry is a media file and the numeric name it is stored under in the archive.
type Entry struct {
	ArchiveName string
	Name        string
	Data        []byte
}

// Table maps media file names to their content, in insertion order.
type Table struct {
	names []string
	files map[string][]byte
}

func NewTable() *Table {
	return &Table{files: make(map[string][]byte)}
}

// Add copies data in under name. Adding a name again with identical bytes is a no-op.
func (t *Table) Add(name string, data []byte) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if existing, ok := t.files[name]; ok {
		if bytes.Equal(existing, data) {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	t.names = append(t.names, name)
	t.files[name] = bytes.Clone(data)
	if t.files[name] == nil {
		t.files[name] = []byte{}
	}
	return nil
}

// AddFile reads the file at path and adds it under its base name.
func (t *Table) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read media file %s: %w", path, err)
	}
	return t.Add(filepath.Base(path), data)
}

func (t *Table) Len() int {
	return len(t.names)
}

// Entries returns the files in insertion order, numbered "0", "1", ...
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.names))
	for i, name := range t.names {
		entries[i] = Entry{ArchiveName: strconv.Itoa(i), Name: name, Data: t.files[name]}
	}
	return entries
}

// Index encodes the numeric-name to file-name mapping as a JSON object.
func (t *Table) Index() ([]byte, error) {
	index := make(map[string]string, len(t.names))
	for _, e := range t.Entries() {
		index[e.ArchiveName] = e.Name
	}
	data, err := json.Marshal(index)
	if err != nil {
		return nil, fmt.Errorf("failed to encode media index: %w", err)
	}
	return data, nil
}

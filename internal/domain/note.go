package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/conorfennell/knolpack/internal/identity"
)

// Note is one flashcard's field content, typed by a Model.
type Note struct {
	model     *Model
	fields    []string
	tags      []string
	guid      string
	sortField *string
}

// NoteOption customises a note under construction.
type NoteOption func(*Note)

func WithTags(tags ...string) NoteOption {
	return func(n *Note) { n.tags = append(n.tags, tags...) }
}

// WithGUID replaces the guid derived from the field values.
func WithGUID(guid string) NoteOption {
	return func(n *Note) { n.guid = guid }
}

// WithSortFieldValue replaces the text taken from the model's sort field.
func WithSortFieldValue(value string) NoteOption {
	return func(n *Note) { n.sortField = &value }
}

// NewNote builds a note for model. The number of values must equal the model's field
// count and tags may not contain whitespace.
func NewNote(model *Model, fields []string, opts ...NoteOption) (*Note, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: note has no model", ErrFieldCountMismatch)
	}
	if len(fields) != len(model.fields) {
		return nil, fmt.Errorf("%w: model %q has %d fields, note has %d",
			ErrFieldCountMismatch, model.name, len(model.fields), len(fields))
	}

	n := &Note{model: model, fields: append([]string(nil), fields...)}
	for _, opt := range opts {
		opt(n)
	}
	for _, tag := range n.tags {
		if tag == "" || strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
	}
	if n.guid == "" {
		n.guid = identity.GUID(n.fields)
	}
	return n, nil
}

func (n *Note) Model() *Model { return n.model }
func (n *Note) GUID() string  { return n.guid }

// Fields returns a copy of the field values in model order.
func (n *Note) Fields() []string {
	return append([]string(nil), n.fields...)
}

// Tags returns a copy of the note's tags.
func (n *Note) Tags() []string {
	return append([]string(nil), n.tags...)
}

// SortField returns the override given at construction or the value of the model's
// sort field.
func (n *Note) SortField() string {
	if n.sortField != nil {
		return *n.sortField
	}
	if len(n.fields) == 0 {
		return ""
	}
	return n.fields[n.model.sortField]
}

// IsEmpty reports whether the value at ord is blank once surrounding whitespace is trimmed.
func (n *Note) IsEmpty(ord int) bool {
	return strings.TrimSpace(n.fields[ord]) == ""
}

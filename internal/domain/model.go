package domain

import (
	"fmt"
	"strings"

	"github.com/conorfennell/knolpack/internal/template"
)

// ModelKind tells how cards are generated for a model's notes.
type ModelKind int

const (
	// Standard models get one card per template whose requirement a note satisfies.
	Standard ModelKind = iota
	// Cloze models get one card per distinct cloze number found in a note's fields.
	Cloze
)

const (
	DefaultFont      = "Liberation Sans"
	DefaultFontSize  = 20
	DefaultLatexPost = `\end{document}`
)

const DefaultLatexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}
`

// Field is a named slot of a model.
type Field struct {
	Name   string
	Font   string
	Size   int
	RTL    bool
	Sticky bool
}

// NewField returns a field with the default font settings.
func NewField(name string) Field {
	return Field{Name: name, Font: DefaultFont, Size: DefaultFontSize}
}

// Template is a question/answer rendering rule of a model.
type Template struct {
	Name           string
	QuestionFormat string
	AnswerFormat   string
	// Browser formats override how the card shows in the browser list; usually empty.
	BrowserQuestionFormat string
	BrowserAnswerFormat   string
}

// Model is a note type. It is immutable once built by NewModel and may be shared by
// any number of notes.
type Model struct {
	id        int64
	name      string
	kind      ModelKind
	fields    []Field
	templates []Template
	css       string
	sortField int
	latexPre  string
	latexPost string

	index        map[string]int
	requirements []template.Requirement
}

// ModelOption customises a model under construction.
type ModelOption func(*Model)

func WithKind(kind ModelKind) ModelOption {
	return func(m *Model) { m.kind = kind }
}

func WithCSS(css string) ModelOption {
	return func(m *Model) { m.css = css }
}

// WithSortField selects the field used for browser sorting and duplicate search.
func WithSortField(index int) ModelOption {
	return func(m *Model) { m.sortField = index }
}

func WithLatex(pre, post string) ModelOption {
	return func(m *Model) {
		m.latexPre = pre
		m.latexPost = post
	}
}

// NewModel validates and builds a model. Every template is parsed; a reference to a
// field the model lacks fails with template.ErrUnknownField and unbalanced sections
// with template.ErrMalformedConditional. Question-side requirements are computed here
// so card generation never has to re-parse.
func NewModel(id int64, name string, fields []Field, templates []Template, opts ...ModelOption) (*Model, error) {
	m := &Model{
		id:        id,
		name:      name,
		fields:    append([]Field(nil), fields...),
		templates: append([]Template(nil), templates...),
		latexPre:  DefaultLatexPre,
		latexPost: DefaultLatexPost,
		index:     make(map[string]int, len(fields)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidModel, id)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidModel)
	}

	names := make([]string, len(m.fields))
	for i, f := range m.fields {
		if strings.TrimSpace(f.Name) == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidModel, i)
		}
		if _, dup := m.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidModel, f.Name)
		}
		m.index[f.Name] = i
		names[i] = f.Name
	}
	if len(m.fields) > 0 && (m.sortField < 0 || m.sortField >= len(m.fields)) {
		return nil, fmt.Errorf("%w: sort field index %d out of range", ErrInvalidModel, m.sortField)
	}

	for _, tmpl := range m.templates {
		req, err := analyzeTemplate(tmpl, names)
		if err != nil {
			return nil, fmt.Errorf("model %q template %q: %w", name, tmpl.Name, err)
		}
		m.requirements = append(m.requirements, req)
	}
	return m, nil
}

func analyzeTemplate(tmpl Template, fields []string) (template.Requirement, error) {
	answer, err := template.Parse(tmpl.AnswerFormat)
	if err != nil {
		return template.Requirement{}, fmt.Errorf("answer format: %w", err)
	}
	if err := answer.CheckFields(fields); err != nil {
		return template.Requirement{}, fmt.Errorf("answer format: %w", err)
	}

	question, err := template.Parse(tmpl.QuestionFormat)
	if err != nil {
		return template.Requirement{}, fmt.Errorf("question format: %w", err)
	}
	if err := question.CheckFields(fields); err != nil {
		return template.Requirement{}, fmt.Errorf("question format: %w", err)
	}
	return template.Analyze(question, fields)
}

func (m *Model) ID() int64           { return m.id }
func (m *Model) Name() string        { return m.name }
func (m *Model) Kind() ModelKind     { return m.kind }
func (m *Model) CSS() string         { return m.css }
func (m *Model) SortFieldIndex() int { return m.sortField }
func (m *Model) LatexPre() string    { return m.latexPre }
func (m *Model) LatexPost() string   { return m.latexPost }

// Fields returns a copy of the model's fields in order.
func (m *Model) Fields() []Field {
	return append([]Field(nil), m.fields...)
}

// Templates returns a copy of the model's templates in ordinal order.
func (m *Model) Templates() []Template {
	return append([]Template(nil), m.templates...)
}

// FieldIndex returns the position of the named field.
func (m *Model) FieldIndex(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Requirements returns the question-side requirement of every template, by ordinal.
func (m *Model) Requirements() []template.Requirement {
	out := make([]template.Requirement, len(m.requirements))
	for i, r := range m.requirements {
		out[i] = template.Requirement{Kind: r.Kind, Fields: append([]int(nil), r.Fields...)}
	}
	return out
}

// SameDefinition reports whether two models describe the same note type, so that
// separately built copies of one model can share an id.
func (m *Model) SameDefinition(other *Model) bool {
	if m == other {
		return true
	}
	if other == nil || m.id != other.id || m.name != other.name || m.kind != other.kind ||
		m.css != other.css || m.sortField != other.sortField ||
		m.latexPre != other.latexPre || m.latexPost != other.latexPost ||
		len(m.fields) != len(other.fields) || len(m.templates) != len(other.templates) {
		return false
	}
	for i := range m.fields {
		if m.fields[i] != other.fields[i] {
			return false
		}
	}
	for i := range m.templates {
		if m.templates[i] != other.templates[i] {
			return false
		}
	}
	return true
}

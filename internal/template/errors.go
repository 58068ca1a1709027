package template

import "errors"

var (
	// ErrMalformedConditional is returned when a {{#X}} / {{^X}} section is not closed
	// by a matching {{/X}}, or a {{/X}} appears without an open section.
	ErrMalformedConditional = errors.New("malformed conditional")

	// ErrUnknownField is returned when a template references a field the model does not define.
	ErrUnknownField = errors.New("unknown field reference")

	// ErrUnrenderable is returned when a question format references fields but no
	// single required field and no single sufficient field can be derived from it.
	ErrUnrenderable = errors.New("could not compute required fields for template")
)

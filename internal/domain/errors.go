package domain

import "errors"

var (
	// ErrFieldCountMismatch is returned when a note's values do not line up with its model's fields.
	ErrFieldCountMismatch = errors.New("field count does not match model")

	// ErrInvalidTag is returned for an empty tag or one containing whitespace.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidModel is returned when a model's own shape is wrong: duplicate or empty
	// field names, a sort field out of range, or a template that does not parse.
	ErrInvalidModel = errors.New("invalid model")

	// ErrInvalidDeck is returned for a deck without a positive id or a name.
	ErrInvalidDeck = errors.New("invalid deck")
)

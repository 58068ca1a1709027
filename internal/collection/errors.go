package collection

import "errors"

var (
	// ErrDuplicateModelID is returned when two different models in one package share an id.
	ErrDuplicateModelID = errors.New("duplicate model id")

	// ErrDuplicateDeckID is returned when two decks in one package share an id.
	ErrDuplicateDeckID = errors.New("duplicate deck id")
)

package domain

import (
	"fmt"
	"strings"
)

// Deck is a named, ordered collection of notes. Decks are built with NewDeck.
type Deck struct {
	id          int64
	name        string
	description string

	notes []*Note
}

// NewDeck returns an empty deck. The id must be positive and unique across the user's
// collection; the name may use "::" to nest decks.
func NewDeck(id int64, name, description string) (*Deck, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidDeck, id)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidDeck)
	}
	return &Deck{id: id, name: name, description: description}, nil
}

func (d *Deck) ID() int64           { return d.id }
func (d *Deck) Name() string        { return d.name }
func (d *Deck) Description() string { return d.description }

// AddNote appends notes in order.
func (d *Deck) AddNote(notes ...*Note) {
	for _, n := range notes {
		if n != nil {
			d.notes = append(d.notes, n)
		}
	}
}

// Notes returns the deck's notes in insertion order.
func (d *Deck) Notes() []*Note {
	return append([]*Note(nil), d.notes...)
}

// Models returns the distinct models used by the deck's notes, in order of first use.
func (d *Deck) Models() []*Model {
	seen := make(map[*Model]bool)
	var models []*Model
	for _, n := range d.notes {
		if !seen[n.model] {
			seen[n.model] = true
			models = append(models, n.model)
		}
	}
	return models
}

// Package collection turns decks of notes into the rows of an Anki collection.
package collection

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/conorfennell/knolpack/internal/cardgen"
	"github.com/conorfennell/knolpack/internal/domain"
	"github.com/conorfennell/knolpack/internal/identity"
	"github.com/conorfennell/knolpack/internal/ids"
)

// FieldSeparator joins note field values in the flds column.
const FieldSeparator = identity.FieldSeparator

// ColRow is the single row of the col table.
type ColRow struct {
	Crt    int64
	Mod    int64
	Scm    int64
	Ver    int
	Dty    int
	Usn    int
	Ls     int64
	Conf   string
	Models string
	Decks  string
	Dconf  string
	Tags   string
}

// NoteRow is one row of the notes table.
type NoteRow struct {
	ID        int64
	GUID      string
	ModelID   int64
	Mod       int64
	Usn       int
	Tags      string
	Fields    string
	SortField string
	Checksum  int64
	Flags     int
	Data      string
}

// CardRow is one row of the cards table. Every card is new and unreviewed.
type CardRow struct {
	ID     int64
	NoteID int64
	DeckID int64
	Ord    int
	Mod    int64
	Usn    int
	Type   int
	Queue  int
	Due    int64
	Ivl    int
	Factor int
	Reps   int
	Lapses int
	Left   int
	Odue   int64
	Odid   int64
	Flags  int
	Data   string
}

// Dataset holds every row of a collection ready to be stored.
type Dataset struct {
	Col           ColRow
	Notes         []NoteRow
	Cards         []CardRow
	ZeroCardNotes int
}

// Build validates the decks as one package and assembles their rows. Note and card ids
// come from gen; now stamps the modification times.
func Build(decks []*domain.Deck, gen *ids.Generator, now time.Time) (*Dataset, error) {
	decks = slices.DeleteFunc(slices.Clone(decks), func(d *domain.Deck) bool { return d == nil })
	models, err := validate(decks)
	if err != nil {
		return nil, err
	}

	for _, d := range decks {
		gen.Reserve(d.ID())
	}
	for _, m := range models {
		gen.Reserve(m.ID())
	}

	mod := now.Unix()
	ds := &Dataset{}
	modelDeck := make(map[int64]int64)

	for _, d := range decks {
		for _, note := range d.Notes() {
			model := note.Model()
			if _, ok := modelDeck[model.ID()]; !ok {
				modelDeck[model.ID()] = d.ID()
			}

			cards := cardgen.Generate(note)
			noteID := gen.Next()
			ds.Notes = append(ds.Notes, newNoteRow(noteID, note, mod))
			if len(cards) == 0 {
				ds.ZeroCardNotes++
				slog.Warn("note produces no cards", "deck", d.Name(), "model", model.Name(), "guid", note.GUID())
				continue
			}
			for _, c := range cards {
				c.NoteID = noteID
				c.CardID = gen.Next()
				c.DeckID = d.ID()
				ds.Cards = append(ds.Cards, newCardRow(c, mod))
			}
		}
	}

	col, err := buildCol(decks, models, modelDeck, mod)
	if err != nil {
		return nil, err
	}
	ds.Col = col
	return ds, nil
}

// validate checks the package-wide invariants and returns the distinct models in first-use order.
func validate(decks []*domain.Deck) ([]*domain.Model, error) {
	seenDecks := make(map[int64]bool)
	seenModels := make(map[int64]*domain.Model)
	var models []*domain.Model

	for _, d := range decks {
		if d.ID() <= 0 || strings.TrimSpace(d.Name()) == "" {
			return nil, fmt.Errorf("%w: deck %d %q was not built with NewDeck", domain.ErrInvalidDeck, d.ID(), d.Name())
		}
		if seenDecks[d.ID()] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDeckID, d.ID())
		}
		seenDecks[d.ID()] = true

		for _, note := range d.Notes() {
			m := note.Model()
			if m == nil {
				return nil, fmt.Errorf("%w: note in deck %q has no model", domain.ErrInvalidModel, d.Name())
			}
			if prev, ok := seenModels[m.ID()]; ok {
				if prev != m && !prev.SameDefinition(m) {
					return nil, fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateModelID, m.ID(), prev.Name(), m.Name())
				}
			} else {
				seenModels[m.ID()] = m
				models = append(models, m)
			}
			if got, want := len(note.Fields()), len(m.Fields()); got != want {
				return nil, fmt.Errorf("%w: note %s has %d fields, model %q has %d",
					domain.ErrFieldCountMismatch, note.GUID(), got, m.Name(), want)
			}
		}
	}
	return models, nil
}

func newNoteRow(id int64, note *domain.Note, mod int64) NoteRow {
	return NoteRow{
		ID:        id,
		GUID:      note.GUID(),
		ModelID:   note.Model().ID(),
		Mod:       mod,
		Usn:       usnUnsynced,
		Tags:      joinTags(note.Tags()),
		Fields:    strings.Join(note.Fields(), FieldSeparator),
		SortField: identity.StripHTMLMedia(note.SortField()),
		Checksum:  identity.Checksum(note.SortField()),
	}
}

func newCardRow(c domain.Card, mod int64) CardRow {
	return CardRow{
		ID:     c.CardID,
		NoteID: c.NoteID,
		DeckID: c.DeckID,
		Ord:    c.Ordinal,
		Mod:    mod,
		Usn:    usnUnsynced,
	}
}

// joinTags renders tags space separated with a leading and trailing space, or empty.
func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

func buildCol(decks []*domain.Deck, models []*domain.Model, modelDeck map[int64]int64, mod int64) (ColRow, error) {
	modelDocs := make(map[string]modelEntry, len(models))
	for _, m := range models {
		modelDocs[strconv.FormatInt(m.ID(), 10)] = newModelEntry(m, modelDeck[m.ID()], mod)
	}

	deckDocs := map[string]deckEntry{
		strconv.Itoa(defaultDeckID): defaultDeck(),
	}
	for _, d := range decks {
		deckDocs[strconv.FormatInt(d.ID(), 10)] = newDeckEntry(d, mod)
	}

	dconf := map[string]deckConf{
		strconv.Itoa(defaultConfID): defaultDeckConf(),
	}

	col := ColRow{
		Crt:  collectionCreated,
		Mod:  collectionMod,
		Scm:  schemaMod,
		Ver:  SchemaVersion,
		Tags: "{}",
	}
	var err error
	if col.Conf, err = encode("conf", defaultColConf()); err != nil {
		return ColRow{}, err
	}
	if col.Models, err = encode("models", modelDocs); err != nil {
		return ColRow{}, err
	}
	if col.Decks, err = encode("decks", deckDocs); err != nil {
		return ColRow{}, err
	}
	if col.Dconf, err = encode("dconf", dconf); err != nil {
		return ColRow{}, err
	}
	return col, nil
}

func encode(name string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return string(b), nil
}

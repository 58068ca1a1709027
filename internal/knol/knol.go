// Package knol turns knols into notes of the two knol note types.
package knol

import (
	"log/slog"
	"strings"

	"github.com/conorfennell/knolpack/internal/cardgen"
	"github.com/conorfennell/knolpack/internal/domain"
	"github.com/conorfennell/knolpack/internal/identity"
)

const (
	ModelID      int64 = 1607392319
	ClozeModelID int64 = 1607392320
)

const css = `.card {
 font-family: arial;
 font-size: 20px;
 text-align: left;
 color: black;
 background-color: white;
}
.context {
 margin-top: 1em;
 font-size: 14px;
 color: grey;
}
.cloze {
 font-weight: bold;
 color: blue;
}
`

const contextBlock = "{{#Context}}<div class=context>{{Context}}</div>{{/Context}}"

var (
	standardModel = mustModel(domain.NewModel(ModelID, "Knol",
		[]domain.Field{domain.NewField("Question"), domain.NewField("Answer"), domain.NewField("Context")},
		[]domain.Template{{
			Name:           "Knol",
			QuestionFormat: "{{Question}}",
			AnswerFormat:   "{{FrontSide}}<hr id=answer>{{Answer}}" + contextBlock,
		}},
		domain.WithCSS(css)))

	clozeModel = mustModel(domain.NewModel(ClozeModelID, "Knol Cloze",
		[]domain.Field{domain.NewField("Text"), domain.NewField("Answer"), domain.NewField("Context")},
		[]domain.Template{{
			Name:           "Cloze",
			QuestionFormat: "{{cloze:Text}}",
			AnswerFormat:   "{{cloze:Text}}{{#Answer}}<hr id=answer>{{Answer}}{{/Answer}}" + contextBlock,
		}},
		domain.WithKind(domain.Cloze), domain.WithCSS(css)))
)

func mustModel(m *domain.Model, err error) *domain.Model {
	if err != nil {
		panic(err)
	}
	return m
}

// Model is the note type of question/answer knols.
func Model() *domain.Model { return standardModel }

// ClozeModel is the note type of knols whose question holds cloze deletions.
func ClozeModel() *domain.Model { return clozeModel }

// Normalize cleans each part of a knol and joins them. Parts are trimmed, lowercased and
// given "\n" line endings, so cosmetic edits keep the knol's identity.
func Normalize(k domain.Knol) []string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		return strings.ReplaceAll(p, "\r\n", "\n")
	}
	return []string{normalizePart(k.Question), normalizePart(k.Answer), normalizePart(k.Context)}
}

// GUID is the note guid of a knol, derived from its normalized parts.
func GUID(k domain.Knol) string {
	return identity.GUID(Normalize(k))
}

// NewNote builds the note for k. A question with cloze markers gives a cloze note.
func NewNote(k domain.Knol, tags ...string) (*domain.Note, error) {
	model := standardModel
	if len(cardgen.ClozeNumbers(k.Question)) > 0 {
		model = clozeModel
	}
	return domain.NewNote(model, []string{k.Question, k.Answer, k.Context},
		domain.WithGUID(GUID(k)), domain.WithTags(tags...))
}

// NewDeck builds a deck holding a note per knol. Knols sharing a guid are added once and
// counted in the returned number of duplicates.
func NewDeck(id int64, name, description string, knols []domain.Knol, tags []string) (*domain.Deck, int, error) {
	deck, err := domain.NewDeck(id, name, description)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]domain.Knol, len(knols))
	duplicates := 0
	for _, k := range knols {
		note, err := NewNote(k, tags...)
		if err != nil {
			return nil, 0, err
		}
		if first, ok := seen[note.GUID()]; ok {
			duplicates++
			slog.Warn("duplicate knol", "source", k.Source, "line", k.Line,
				"first_source", first.Source, "first_line", first.Line)
			continue
		}
		seen[note.GUID()] = k
		deck.AddNote(note)
	}
	return deck, duplicates, nil
}

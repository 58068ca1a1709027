// Package cardgen decides which cards a note produces.
package cardgen

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/conorfennell/knolpack/internal/domain"
)

// clozeMarker matches without overlap, so a deletion nested inside another, as in
// {{c1::a{{c2::b}}}}, is consumed by the outer one and gets no card of its own.
var clozeMarker = regexp.MustCompile(`(?s)\{\{c(\d+)::.*?\}\}`)

// ClozeNumbers returns the distinct positive cloze numbers in text, ascending.
func ClozeNumbers(text string) []int {
	return sortedKeys(collectCloze(nil, text))
}

func collectCloze(seen map[int]bool, text string) map[int]bool {
	if seen == nil {
		seen = make(map[int]bool)
	}
	for _, m := range clozeMarker.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		seen[n] = true
	}
	return seen
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Generate returns the card descriptors of a note ordered by ordinal. Only Ordinal is
// set; ids are assigned by the dataset builder.
//
// Standard notes get a card for every template whose requirement their values satisfy.
// Cloze notes get one card per distinct cloze number N across all fields, with ordinal
// N-1. A cloze note without markers gets no cards.
func Generate(note *domain.Note) []domain.Card {
	model := note.Model()
	if model.Kind() == domain.Cloze {
		seen := map[int]bool{}
		for _, value := range note.Fields() {
			seen = collectCloze(seen, value)
		}
		var cards []domain.Card
		for _, n := range sortedKeys(seen) {
			cards = append(cards, domain.Card{Ordinal: n - 1})
		}
		return cards
	}

	nonEmpty := func(ord int) bool { return !note.IsEmpty(ord) }
	var cards []domain.Card
	for ord, req := range model.Requirements() {
		if req.Satisfied(nonEmpty) {
			cards = append(cards, domain.Card{Ordinal: ord})
		}
	}
	return cards
}

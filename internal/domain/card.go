package domain

// Card is a reviewable card derived from a note and a template ordinal.
// Card generation sets Ordinal; the dataset builder then assigns the three ids.
type Card struct {
	NoteID  int64
	CardID  int64
	DeckID  int64
	Ordinal int
}

package apkg

import "errors"

var (
	// ErrNoDecks is returned when a package is built without any deck.
	ErrNoDecks = errors.New("package has no decks")

	// ErrStorageWrite wraps failures of the embedded collection database.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrArchiveWrite wraps failures while producing or writing the archive.
	ErrArchiveWrite = errors.New("archive write failed")
)

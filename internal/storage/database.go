package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/conorfennell/knolpack/internal/collection"
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new collection database at dsn and applies the schema. The file must
// not already hold a collection.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// WriteDataset inserts every row of ds in a single transaction. On error nothing is written.
func (db *DB) WriteDataset(ds *collection.Dataset) (err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err := insertCol(tx, ds.Col); err != nil {
		return err
	}
	if err := insertNotes(tx, ds.Notes); err != nil {
		return err
	}
	if err := insertCards(tx, ds.Cards); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}

func insertCol(tx *sql.Tx, col collection.ColRow) error {
	_, err := tx.Exec(`
		INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		VALUES (NULL, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		col.Crt, col.Mod, col.Scm, col.Ver, col.Dty, col.Usn, col.Ls,
		col.Conf, col.Models, col.Decks, col.Dconf, col.Tags,
	)
	if err != nil {
		return fmt.Errorf("failed to insert col: %w", err)
	}
	return nil
}

func insertNotes(tx *sql.Tx, notes []collection.NoteRow) error {
	stmt, err := tx.Prepare(`
		INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare note insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range notes {
		_, err := stmt.Exec(
			n.ID, n.GUID, n.ModelID, n.Mod, n.Usn, n.Tags,
			n.Fields, n.SortField, n.Checksum, n.Flags, n.Data,
		)
		if err != nil {
			return fmt.Errorf("failed to insert note %d: %w", n.ID, err)
		}
	}
	return nil
}

func insertCards(tx *sql.Tx, cards []collection.CardRow) error {
	stmt, err := tx.Prepare(`
		INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor,
		                   reps, lapses, left, odue, odid, flags, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare card insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		_, err := stmt.Exec(
			c.ID, c.NoteID, c.DeckID, c.Ord, c.Mod, c.Usn, c.Type, c.Queue, c.Due,
			c.Ivl, c.Factor, c.Reps, c.Lapses, c.Left, c.Odue, c.Odid, c.Flags, c.Data,
		)
		if err != nil {
			return fmt.Errorf("failed to insert card %d: %w", c.ID, err)
		}
	}
	return nil
}

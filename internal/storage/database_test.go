package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/knolpack/internal/collection"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "collection.anki2"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func count(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.conn.QueryRow("SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func sampleDataset() *collection.Dataset {
	return &collection.Dataset{
		Col: collection.ColRow{
			Crt: 1411124400, Mod: 1425279151694, Scm: 1425279151690, Ver: 11,
			Conf: "{}", Models: "{}", Decks: "{}", Dconf: "{}", Tags: "{}",
		},
		Notes: []collection.NoteRow{
			{ID: 100, GUID: "abc", ModelID: 7, Mod: 1, Usn: -1, Fields: "q\x1fa", SortField: "q", Checksum: 42},
		},
		Cards: []collection.CardRow{
			{ID: 101, NoteID: 100, DeckID: 5, Ord: 0, Mod: 1, Usn: -1},
			{ID: 102, NoteID: 100, DeckID: 5, Ord: 1, Mod: 1, Usn: -1},
		},
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.conn.Query("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	assert.Equal(t, []string{"cards", "col", "graves", "notes", "revlog"}, tables)

	var indexes int
	require.NoError(t, db.conn.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'ix_%'").Scan(&indexes))
	assert.Equal(t, 7, indexes)
}

func TestWriteDataset(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.WriteDataset(sampleDataset()))

	assert.Equal(t, 1, count(t, db, "col"))
	assert.Equal(t, 1, count(t, db, "notes"))
	assert.Equal(t, 2, count(t, db, "cards"))

	var flds, sfld string
	var csum int64
	require.NoError(t, db.conn.QueryRow("SELECT flds, sfld, csum FROM notes WHERE id = 100").Scan(&flds, &sfld, &csum))
	assert.Equal(t, "q\x1fa", flds)
	assert.Equal(t, "q", sfld)
	assert.Equal(t, int64(42), csum)

	var ver int
	require.NoError(t, db.conn.QueryRow("SELECT ver FROM col").Scan(&ver))
	assert.Equal(t, 11, ver)
}

func TestWriteDatasetIsAtomic(t *testing.T) {
	db := openTestDB(t)
	ds := sampleDataset()
	ds.Cards = append(ds.Cards, collection.CardRow{ID: 101, NoteID: 100, DeckID: 5})

	err := db.WriteDataset(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert card 101")

	assert.Zero(t, count(t, db, "col"))
	assert.Zero(t, count(t, db, "notes"))
	assert.Zero(t, count(t, db, "cards"))
}

// Package apkg serializes decks and media into an Anki package archive.
package apkg

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/conorfennell/knolpack/internal/collection"
	"github.com/conorfennell/knolpack/internal/domain"
	"github.com/conorfennell/knolpack/internal/ids"
	"github.com/conorfennell/knolpack/internal/media"
	"github.com/conorfennell/knolpack/internal/storage"
)

// Archive entry names the receiving application looks for.
const (
	CollectionEntry = "collection.anki2"
	MediaEntry      = "media"
)

// store is the part of the collection database a build needs.
type store interface {
	WriteDataset(ds *collection.Dataset) error
	Close() error
}

func openSQLite(path string) (store, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Package is a set of decks and media files ready to be written as one archive.
type Package struct {
	decks     []*domain.Deck
	media     *media.Table
	now       func() time.Time
	openStore func(path string) (store, error)
}

// Option customises a Package.
type Option func(*Package)

// WithClock sets the time source used for modification times and id seeding.
func WithClock(now func() time.Time) Option {
	return func(p *Package) { p.now = now }
}

// Result summarises a successful build.
type Result struct {
	Notes         int
	Cards         int
	ZeroCardNotes int
	MediaFiles    int
}

// New returns a package of decks and files. files may be nil.
func New(decks []*domain.Deck, files *media.Table, opts ...Option) (*Package, error) {
	var live []*domain.Deck
	for _, d := range decks {
		if d != nil {
			live = append(live, d)
		}
	}
	if len(live) == 0 {
		return nil, ErrNoDecks
	}
	if files == nil {
		files = media.NewTable()
	}

	p := &Package{
		decks:     live,
		media:     files,
		now:       time.Now,
		openStore: openSQLite,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Build produces the archive bytes. Nothing is returned unless every step succeeds.
// Each call uses its own id generator.
func (p *Package) Build() ([]byte, Result, error) {
	gen := ids.NewGenerator(p.now)
	ds, err := collection.Build(p.decks, gen, p.now())
	if err != nil {
		return nil, Result{}, err
	}

	db, err := p.writeCollection(ds)
	if err != nil {
		return nil, Result{}, err
	}

	archive, err := p.writeArchive(db)
	if err != nil {
		return nil, Result{}, err
	}

	res := Result{
		Notes:         len(ds.Notes),
		Cards:         len(ds.Cards),
		ZeroCardNotes: ds.ZeroCardNotes,
		MediaFiles:    p.media.Len(),
	}
	slog.Info("built package",
		"notes", res.Notes, "cards", res.Cards,
		"zero_card_notes", res.ZeroCardNotes, "media", res.MediaFiles, "bytes", len(archive))
	return archive, res, nil
}

// writeCollection stores ds in a temporary database file and returns the file's bytes.
func (p *Package) writeCollection(ds *collection.Dataset) ([]byte, error) {
	dir, err := os.MkdirTemp("", "knolpack-")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create temp dir: %w", ErrStorageWrite, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, CollectionEntry)
	db, err := p.openStore(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if err := db.WriteDataset(ds); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to close database: %w", ErrStorageWrite, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read database: %w", ErrStorageWrite, err)
	}
	return data, nil
}

func (p *Package) writeArchive(db []byte) ([]byte, error) {
	index, err := p.media.Index()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveWrite, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := addEntry(zw, CollectionEntry, db); err != nil {
		return nil, err
	}
	if err := addEntry(zw, MediaEntry, index); err != nil {
		return nil, err
	}
	for _, e := range p.media.Entries() {
		if err := addEntry(zw, e.ArchiveName, e.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to finish archive: %w", ErrArchiveWrite, err)
	}
	return buf.Bytes(), nil
}

func addEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("%w: failed to create entry %s: %w", ErrArchiveWrite, name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write entry %s: %w", ErrArchiveWrite, name, err)
	}
	return nil
}

// WriteTo builds the package and writes the archive to w.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	data, _, err := p.Build()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrArchiveWrite, err)
	}
	return int64(n), nil
}

// WriteToPath builds the package and writes it to path. The archive is written to a
// temporary file in the same directory and renamed into place, so path is either the
// complete archive or untouched.
func (p *Package) WriteToPath(path string) (Result, error) {
	data, res, err := p.Build()
	if err != nil {
		return Result{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".knolpack-*.apkg")
	if err != nil {
		return Result{}, fmt.Errorf("%w: failed to create temp file: %w", ErrArchiveWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Result{}, fmt.Errorf("%w: failed to write %s: %w", ErrArchiveWrite, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: failed to close %s: %w", ErrArchiveWrite, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return Result{}, fmt.Errorf("%w: failed to move archive to %s: %w", ErrArchiveWrite, path, err)
	}
	return res, nil
}

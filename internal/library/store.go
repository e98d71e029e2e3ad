package library

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cadenza/internal/metadata"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store manages item persistence backed by SQLite. One Store holds an
// exclusive file lock for its database; a second process opening the same
// path fails fast instead of interleaving writes.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// ErrLocked indicates another process holds the library database.
var ErrLocked = errors.New("library database is locked by another process")

// Open initializes or connects to the library database at path and applies
// pending migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure library directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the file lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

type migration struct {
	version string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		versions = append(versions, entry.Name())
	}
	sort.Strings(versions)

	migrations := make([]migration, 0, len(versions))
	for _, name := range versions {
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{
			version: strings.TrimSuffix(name, ".sql"),
			sql:     string(data),
		})
	}
	return migrations, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

const itemColumns = `title, artist, album, album_artist, track, disc, disc_total,
    length, mb_track_id, mb_release_id, label, barcode, catalog_num, country,
    media, year, album_disambig, comp`

// SaveItems inserts items in one transaction.
func (s *Store) SaveItems(ctx context.Context, items []*metadata.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items (`+itemColumns+`, added_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx,
			item.Title, item.Artist, item.Album, item.AlbumArtist,
			item.Track, item.Disc, item.DiscTotal, item.Length,
			item.MBTrackID, item.MBReleaseID, item.Label, item.Barcode,
			item.CatalogNum, item.Country, item.Media, item.Year,
			item.AlbumDisambig, boolToInt(item.Comp), timestamp,
		); err != nil {
			return fmt.Errorf("insert item %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// ReplaceAlbum swaps the stored items for a release: existing rows with the
// same album artist and album name are removed before the new ones land.
func (s *Store) ReplaceAlbum(ctx context.Context, albumArtist, album string, items []*metadata.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM items WHERE album_artist = ? AND album = ?`, albumArtist, album); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items (`+itemColumns+`, added_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.Title, item.Artist, item.Album, item.AlbumArtist,
			item.Track, item.Disc, item.DiscTotal, item.Length,
			item.MBTrackID, item.MBReleaseID, item.Label, item.Barcode,
			item.CatalogNum, item.Country, item.Media, item.Year,
			item.AlbumDisambig, boolToInt(item.Comp), timestamp,
		); err != nil {
			return fmt.Errorf("insert item %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// ItemsByAlbum returns a release's items ordered by disc and track number.
func (s *Store) ItemsByAlbum(ctx context.Context, albumArtist, album string) ([]*metadata.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
         WHERE album_artist = ? AND album = ?
         ORDER BY disc, track, title`, albumArtist, album)
	if err != nil {
		return nil, fmt.Errorf("query album items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ItemsByReleaseID returns the items tagged with a release identifier.
func (s *Store) ItemsByReleaseID(ctx context.Context, releaseID string) ([]*metadata.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
         WHERE mb_release_id = ?
         ORDER BY disc, track, title`, releaseID)
	if err != nil {
		return nil, fmt.Errorf("query release items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// AlbumSummary is one stored release with its item count.
type AlbumSummary struct {
	AlbumArtist string
	Album       string
	Year        int
	Items       int
}

// Albums lists the stored releases ordered by album artist and title.
func (s *Store) Albums(ctx context.Context) ([]AlbumSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT album_artist, album, MAX(year), COUNT(1) FROM items
         GROUP BY album_artist, album
         ORDER BY album_artist, album`)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	var albums []AlbumSummary
	for rows.Next() {
		var a AlbumSummary
		if err := rows.Scan(&a.AlbumArtist, &a.Album, &a.Year, &a.Items); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

func collectItems(rows *sql.Rows) ([]*metadata.Item, error) {
	var items []*metadata.Item
	for rows.Next() {
		var item metadata.Item
		var comp int
		if err := rows.Scan(
			&item.Title, &item.Artist, &item.Album, &item.AlbumArtist,
			&item.Track, &item.Disc, &item.DiscTotal, &item.Length,
			&item.MBTrackID, &item.MBReleaseID, &item.Label, &item.Barcode,
			&item.CatalogNum, &item.Country, &item.Media, &item.Year,
			&item.AlbumDisambig, &comp,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Comp = comp != 0
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

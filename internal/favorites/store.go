package favorites

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
)

// Store is the durable per-user favorites cache, one SQLite file.
//
// A single long-lived pool is shared by all operations; SQLite write
// serialization is handled by the driver plus busy_timeout, so there is one
// effective writer at a time.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the favorites database at path and applies the
// schema. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func applySchema(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS favorites (
        user        TEXT NOT NULL,
        object_id   TEXT NOT NULL,
        title       TEXT NOT NULL DEFAULT '',
        artist      TEXT NOT NULL DEFAULT '',
        date        TEXT NOT NULL DEFAULT '',
        nationality TEXT NOT NULL DEFAULT '',
        medium      TEXT NOT NULL DEFAULT '',
        image_url   TEXT NOT NULL DEFAULT '',
        PRIMARY KEY (user, object_id)
    );`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const upsertSQL = `INSERT OR REPLACE INTO favorites
    (user, object_id, title, artist, date, nationality, medium, image_url)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

// Put upserts one record for user. Overwriting an existing favorite with the
// same id is not an error; the row is replaced.
func (s *Store) Put(user string, rec artwork.Record) error {
	id := artwork.NormalizeID(rec.ID)
	_, err := s.db.Exec(upsertSQL,
		user, id, rec.Title, rec.Artist, rec.Date, rec.Nationality, rec.Medium, rec.ImageURL)
	if err != nil {
		return fmt.Errorf("store favorite %s: %w", id, err)
	}
	return nil
}

// Delete removes a favorite. Deleting an id that is not present is a no-op.
func (s *Store) Delete(user, id string) error {
	_, err := s.db.Exec(`DELETE FROM favorites WHERE user = ? AND object_id = ?;`,
		user, artwork.NormalizeID(id))
	if err != nil {
		return fmt.Errorf("delete favorite %s: %w", id, err)
	}
	return nil
}

// List returns all of user's favorites ordered by title ascending (byte
// order) with object_id as the tiebreaker. SQLite's default BINARY collation
// gives the deterministic ordering the exporter depends on.
func (s *Store) List(user string) ([]artwork.Record, error) {
	rows, err := s.db.Query(`SELECT object_id, title, artist, date, nationality, medium, image_url
        FROM favorites WHERE user = ?
        ORDER BY title ASC, object_id ASC;`, user)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var records []artwork.Record
	for rows.Next() {
		var r artwork.Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Artist, &r.Date, &r.Nationality, &r.Medium, &r.ImageURL); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// IDs returns the set of favorited object ids for user.
func (s *Store) IDs(user string) (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT object_id FROM favorites WHERE user = ?;`, user)
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// Import parses a favorites exchange payload and upserts every record for
// user inside one transaction. Existing entries with matching ids are merged
// over (upsert); a malformed payload aborts before anything is written, so a
// failed import leaves the store unchanged.
func (s *Store) Import(user string, data []byte) (int, error) {
	records, err := artwork.Parse(data)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(upsertSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(user, r.ID, r.Title, r.Artist, r.Date, r.Nationality, r.Medium, r.ImageURL); err != nil {
			return 0, fmt.Errorf("import favorite %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(records), nil
}

// Export serializes user's favorites as the exchange payload, in List order.
func (s *Store) Export(user string) ([]byte, error) {
	records, err := s.List(user)
	if err != nil {
		return nil, err
	}
	return artwork.Marshal(records)
}

// Package store persists credentials and the last good project snapshot in
// a local sqlite database, so a restarted bot can serve lookups before the
// first setup run.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/axobot/axobot/internal/axosoft"
)

const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS projects (
	position INTEGER PRIMARY KEY,
	project_id INTEGER NOT NULL,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS kind_labels (
	kind TEXT PRIMARY KEY,
	singular TEXT NOT NULL,
	plural TEXT NOT NULL
);
`

const (
	keyBaseURL     = "base_url"
	keyAccessToken = "access_token"
)

// Store is the sqlite-backed credential and snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open store db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) credential(key string) string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

func (s *Store) setCredential(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO credentials (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// BaseURL returns the stored Axosoft base URL, or "" when unset.
func (s *Store) BaseURL() string {
	return s.credential(keyBaseURL)
}

// AccessToken returns the stored bearer token, or "" when unset.
func (s *Store) AccessToken() string {
	return s.credential(keyAccessToken)
}

// SetBaseURL persists the Axosoft base URL.
func (s *Store) SetBaseURL(url string) error {
	return s.setCredential(keyBaseURL, url)
}

// SetAccessToken persists the bearer token.
func (s *Store) SetAccessToken(token string) error {
	return s.setCredential(keyAccessToken, token)
}

// SaveSnapshot replaces the persisted project list and kind labels with the
// result of a successful setup. The write is transactional: a failed save
// leaves the previous snapshot intact.
func (s *Store) SaveSnapshot(projects []axosoft.Project, vocab axosoft.Vocabulary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM projects`); err != nil {
		return err
	}
	for i, p := range projects {
		if _, err := tx.Exec(
			`INSERT INTO projects (position, project_id, name) VALUES (?, ?, ?)`,
			i, p.ID, p.Name); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM kind_labels`); err != nil {
		return err
	}
	for kind, labels := range vocab {
		if _, err := tx.Exec(
			`INSERT INTO kind_labels (kind, singular, plural) VALUES (?, ?, ?)`,
			kind.APIKey(), labels.Singular, labels.Plural); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSnapshot returns the persisted project list and kind labels. When no
// snapshot has been saved it returns an empty project list and the default
// vocabulary.
func (s *Store) LoadSnapshot() ([]axosoft.Project, axosoft.Vocabulary, error) {
	rows, err := s.db.Query(`SELECT project_id, name FROM projects ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var projects []axosoft.Project
	for rows.Next() {
		var p axosoft.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	vocab := axosoft.DefaultVocabulary()
	labelRows, err := s.db.Query(`SELECT kind, singular, plural FROM kind_labels`)
	if err != nil {
		return nil, nil, err
	}
	defer labelRows.Close()
	for labelRows.Next() {
		var key, singular, plural string
		if err := labelRows.Scan(&key, &singular, &plural); err != nil {
			return nil, nil, err
		}
		if kind, ok := axosoft.KindFromAPIKey(key); ok {
			vocab[kind] = axosoft.KindLabels{Singular: singular, Plural: plural}
		}
	}
	if err := labelRows.Err(); err != nil {
		return nil, nil, err
	}
	return projects, vocab, nil
}

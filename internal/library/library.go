// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists fetched songs in a SQLite catalog with
// full-text lyric search.
package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yakirbe/lyricdeck/pkg/types"
)

const (
	defaultPath       = "library/songs.db"
	defaultMaxResults = 20
)

// Store manages the song catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog database at cfg.Path, creating the
// schema if it does not exist.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if cfg.Path == "" {
		cfg.Path = defaultPath
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			artist TEXT,
			source_url TEXT,
			lyrics TEXT NOT NULL,
			rtl INTEGER NOT NULL DEFAULT 0,
			fetched_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='songs_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE songs_fts USING fts5(title, lyrics, content=songs, content_rowid=rowid)`,
			`CREATE TRIGGER songs_ai AFTER INSERT ON songs BEGIN
				INSERT INTO songs_fts(rowid, title, lyrics) VALUES (new.rowid, new.title, new.lyrics);
			END`,
			`CREATE TRIGGER songs_ad AFTER DELETE ON songs BEGIN
				INSERT INTO songs_fts(songs_fts, rowid, title, lyrics) VALUES('delete', old.rowid, old.title, old.lyrics);
			END`,
			`CREATE TRIGGER songs_au AFTER UPDATE ON songs BEGIN
				INSERT INTO songs_fts(songs_fts, rowid, title, lyrics) VALUES('delete', old.rowid, old.title, old.lyrics);
				INSERT INTO songs_fts(rowid, title, lyrics) VALUES (new.rowid, new.title, new.lyrics);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Put inserts or replaces a song by its ID.
func (s *Store) Put(song *types.Song) error {
	rtl := 0
	if song.RTL {
		rtl = 1
	}
	fetchedAt := ""
	if !song.FetchedAt.IsZero() {
		fetchedAt = song.FetchedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(`
		INSERT INTO songs (id, title, artist, source_url, lyrics, rtl, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			source_url = excluded.source_url,
			lyrics = excluded.lyrics,
			rtl = excluded.rtl,
			fetched_at = excluded.fetched_at`,
		song.ID, song.Title, song.Artist, song.SourceURL,
		strings.Join(song.Lines, "\n"), rtl, fetchedAt)
	if err != nil {
		return fmt.Errorf("storing song %s: %w", song.ID, err)
	}
	return nil
}

// Get returns the song with the given ID, or an error when it is absent.
func (s *Store) Get(id string) (*types.Song, error) {
	row := s.db.QueryRow(`
		SELECT id, title, artist, source_url, lyrics, rtl, fetched_at
		FROM songs WHERE id = ?`, id)
	song, err := scanSong(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("song %q not in library", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading song %s: %w", id, err)
	}
	return song, nil
}

// List returns all songs ordered by title.
func (s *Store) List() ([]*types.Song, error) {
	rows, err := s.db.Query(`
		SELECT id, title, artist, source_url, lyrics, rtl, fetched_at
		FROM songs ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	defer rows.Close()
	return collectSongs(rows)
}

// Search runs a full-text query over titles and lyrics, returning the
// best matches capped at the configured maximum.
func (s *Store) Search(query string) ([]*types.Song, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.title, s.artist, s.source_url, s.lyrics, s.rtl, s.fetched_at
		FROM songs_fts f
		JOIN songs s ON s.rowid = f.rowid
		WHERE songs_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, ftsQuery(query), s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching songs: %w", err)
	}
	defer rows.Close()
	return collectSongs(rows)
}

// ftsQuery quotes each term so user input cannot inject FTS5 operators.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, " ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*types.Song, error) {
	var song types.Song
	var artist, sourceURL, lyrics, fetchedAt sql.NullString
	var rtl int
	if err := row.Scan(&song.ID, &song.Title, &artist, &sourceURL, &lyrics, &rtl, &fetchedAt); err != nil {
		return nil, err
	}
	song.Artist = artist.String
	song.SourceURL = sourceURL.String
	if lyrics.String != "" {
		song.Lines = strings.Split(lyrics.String, "\n")
	}
	song.RTL = rtl != 0
	if fetchedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, fetchedAt.String); err == nil {
			song.FetchedAt = t
		}
	}
	return &song, nil
}

func collectSongs(rows *sql.Rows) ([]*types.Song, error) {
	var songs []*types.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning song row: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating song rows: %w", err)
	}
	return songs, nil
}

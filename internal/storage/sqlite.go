package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

var _ domain.FavoritesRepository = (*SQLiteRepository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
	id        TEXT PRIMARY KEY,
	title     TEXT NOT NULL,
	author    TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	position  INTEGER NOT NULL
);`

// SQLiteRepository stores favorites in a SQLite database file.
type SQLiteRepository struct {
	db  *sql.DB
	log *logger.Logger
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the favorites table exists.
func OpenSQLite(ctx context.Context, path string, log *logger.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; keeps ":memory:" databases on a single connection too
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	log.Debug("sqlite repo: opened %s", path)
	return &SQLiteRepository{db: db, log: log}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Load returns favorites ordered by their saved position.
func (r *SQLiteRepository) Load(ctx context.Context) ([]domain.FavoriteEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, author, image_url FROM favorites ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var out []domain.FavoriteEntry
	for rows.Next() {
		var e domain.FavoriteEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Author, &e.ImageURL); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	r.log.Debug("sqlite repo: loaded %d favorites", len(out))
	return out, nil
}

// Save replaces every stored favorite with entries in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, entries []domain.FavoriteEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO favorites (id, title, author, image_url, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Title, e.Author, e.ImageURL, i); err != nil {
			return fmt.Errorf("insert favorite %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.log.Debug("sqlite repo: saved %d favorites", len(entries))
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

var _ domain.FavoritesRepository = (*FileRepository)(nil)

type favoriteRecord struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author,omitempty"`
	ImageURL string `yaml:"image_url,omitempty"`
}

type favoritesFile struct {
	Favorites []favoriteRecord `yaml:"favorites"`
}

// FileRepository stores favorites as a YAML document on disk.
type FileRepository struct {
	path string
	log  *logger.Logger
}

// NewFileRepository returns a repository backed by the file at path. The
// file is created on the first Save.
func NewFileRepository(path string, log *logger.Logger) *FileRepository {
	return &FileRepository{path: path, log: log}
}

// Load reads the file. A missing file means no favorites yet.
func (r *FileRepository) Load(ctx context.Context) ([]domain.FavoriteEntry, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.log.Debug("file repo: %s does not exist yet", r.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}

	var doc favoritesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode favorites %s: %w", r.path, err)
	}

	out := make([]domain.FavoriteEntry, 0, len(doc.Favorites))
	for _, rec := range doc.Favorites {
		out = append(out, domain.FavoriteEntry{
			ID:       rec.ID,
			Title:    rec.Title,
			Author:   rec.Author,
			ImageURL: rec.ImageURL,
		})
	}
	r.log.Debug("file repo: loaded %d favorites", len(out))
	return out, nil
}

// Save writes entries to a temp file next to the target and renames it into
// place.
func (r *FileRepository) Save(ctx context.Context, entries []domain.FavoriteEntry) error {
	doc := favoritesFile{Favorites: make([]favoriteRecord, 0, len(entries))}
	for _, e := range entries {
		doc.Favorites = append(doc.Favorites, favoriteRecord{
			ID:       e.ID,
			Title:    e.Title,
			Author:   e.Author,
			ImageURL: e.ImageURL,
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".favorites-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace favorites: %w", err)
	}
	r.log.Debug("file repo: saved %d favorites to %s", len(entries), r.path)
	return nil
}

// Package repository persists fetched assets on disk. The store is
// write-once per key: files are written atomically and never invalidated.
package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"otogram/internal/config"
	"otogram/internal/constants"
	"otogram/internal/domain"

	"github.com/rs/zerolog"
)

// ErrNotCached reports that the store holds no file for the asset.
var ErrNotCached = errors.New("asset not cached")

type AssetStore struct {
	root   string
	logger zerolog.Logger
}

func NewAssetStore(cfg *config.Config, logger zerolog.Logger) (*AssetStore, error) {
	s := &AssetStore{root: cfg.AssetDir, logger: logger}

	for _, cat := range []domain.AssetCategory{domain.CategoryCover, domain.CategoryDiff, domain.CategoryRank} {
		dir := filepath.Join(s.root, string(cat))
		if err := os.MkdirAll(dir, constants.AssetDirPerm); err != nil {
			return nil, fmt.Errorf("failed to create asset dir %s: %w", dir, err)
		}
	}

	logger.Info().Str("root", s.root).Msg("asset store ready")
	return s, nil
}

// Path returns the on-disk location for an asset id.
func (s *AssetStore) Path(id domain.AssetID) string {
	return filepath.Join(s.root, string(id.Category), id.Filename())
}

// Load reads the stored bytes for the asset. A missing file returns
// ErrNotCached; a read failure is logged and reported as a miss so the
// caller falls through to the origin.
func (s *AssetStore) Load(id domain.AssetID) ([]byte, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotCached
		}
		s.logger.Warn().Err(err).Str("asset", id.String()).Msg("asset store read failed, treating as miss")
		return nil, fmt.Errorf("%w: %v", ErrNotCached, err)
	}
	return data, nil
}

// Has reports whether the asset exists on disk without reading it.
func (s *AssetStore) Has(id domain.AssetID) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Save writes the asset bytes via a temp file and rename, so readers never
// observe a partial file.
func (s *AssetStore) Save(id domain.AssetID, data []byte) error {
	dst := s.Path(id)
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+id.Filename()+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", id, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", id, err)
	}
	if err := os.Chmod(tmpName, constants.AssetFilePerm); err != nil {
		s.logger.Debug().Err(err).Str("asset", id.String()).Msg("chmod on temp asset failed")
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	return nil
}

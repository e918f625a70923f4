package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"order-desk/internal/model"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system. Files live under dir
// and are served by the router below /upload/.
type fileStore struct {
	dir     string
	baseURL string
	folder  string
	logger  zerolog.Logger
}

// NewFileStore creates a new local-disk image store.
// baseURL may be empty, in which case references are site-relative.
func NewFileStore(dir, baseURL, folder string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory %s: %w", dir, err)
	}

	logger = logger.With().Str("component", "file-asset-store").Logger()
	logger.Info().Str("dir", dir).Msg("local asset store initialised")

	return &fileStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		folder:  folder,
		logger:  logger,
	}, nil
}

// Upload writes the image to <dir>/<folder>/<uuid><ext>.
func (s *fileStore) Upload(ctx context.Context, img *model.ImageUpload) (string, error) {
	ext, err := imageExtension(img)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := newAssetID(s.folder)
	target := filepath.Join(s.dir, filepath.FromSlash(id)+ext)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset folder: %w", err)
	}
	if err := os.WriteFile(target, img.Data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", target).Msg("failed to write image")
		return "", fmt.Errorf("failed to write image %s: %w", target, err)
	}

	s.logger.Info().
		Str("file", target).
		Int("bytes", len(img.Data)).
		Msg("image stored on disk")

	return s.baseURL + uploadMarker + id + ext, nil
}

// Delete removes every file stored for assetID, whatever its extension.
func (s *fileStore) Delete(ctx context.Context, assetID string) error {
	if err := checkAssetID(assetID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pattern := filepath.Join(s.dir, filepath.FromSlash(assetID)) + ".*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to match asset files: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no file found for asset %s: %w", assetID, os.ErrNotExist)
	}

	for _, file := range matches {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to remove %s: %w", file, err)
		}
	}

	s.logger.Info().
		Str("asset_id", assetID).
		Int("files", len(matches)).
		Msg("image removed from disk")

	return nil
}

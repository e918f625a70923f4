// Package assets stores order images outside the database and resolves the
// references kept on orders back to asset identifiers.
package assets

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"order-desk/internal/model"

	"github.com/google/uuid"
)

// Store defines the interface for external image storage.
type Store interface {
	// Upload stores an image and returns the reference to keep on the order.
	Upload(ctx context.Context, img *model.ImageUpload) (string, error)

	// Delete removes the asset with the given identifier.
	Delete(ctx context.Context, assetID string) error
}

var (
	// ErrUnsupportedImage is returned for uploads whose extension is not allowed.
	ErrUnsupportedImage = errors.New("unsupported image type")

	// ErrEmptyImage is returned for uploads without content.
	ErrEmptyImage = errors.New("image is empty")

	// ErrStoreDisabled is returned by the store used when no backend is configured.
	ErrStoreDisabled = errors.New("asset storage is disabled")

	// ErrInvalidAssetID is returned for identifiers that would escape the store.
	ErrInvalidAssetID = errors.New("invalid asset id")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// imageExtension returns the lower-cased extension of an allowed image file.
func imageExtension(img *model.ImageUpload) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", ErrEmptyImage
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, img.Filename)
	}
	return ext, nil
}

// newAssetID returns a fresh identifier inside folder.
func newAssetID(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return uuid.NewString()
	}
	return path.Join(folder, uuid.NewString())
}

// checkAssetID rejects identifiers that are empty or contain relative segments.
func checkAssetID(id string) error {
	if id == "" || strings.HasPrefix(id, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetID, id)
	}
	for _, seg := range strings.Split(id, "/") {
		if seg == ".." || seg == "." {
			return fmt.Errorf("%w: %q", ErrInvalidAssetID, id)
		}
	}
	return nil
}

// disabledStore is used when no asset backend is configured.
type disabledStore struct{}

// NewDisabledStore returns a Store that refuses every operation.
func NewDisabledStore() Store {
	return disabledStore{}
}

func (disabledStore) Upload(context.Context, *model.ImageUpload) (string, error) {
	return "", ErrStoreDisabled
}

func (disabledStore) Delete(context.Context, string) error {
	return ErrStoreDisabled
}

package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"order-desk/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_UploadAndDelete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(dir, "http://localhost:8080", "orders", logger)
	require.NoError(t, err)

	ref, err := store.Upload(ctx, &model.ImageUpload{
		Filename:    "Bag.JPG",
		ContentType: "image/jpeg",
		Data:        []byte("fake-jpeg"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "http://localhost:8080/upload/orders/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	id, ok := ExtractAssetID(ref)
	require.True(t, ok)

	stored := filepath.Join(dir, filepath.FromSlash(id)+".jpg")
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg", string(content))

	require.NoError(t, store.Delete(ctx, id))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_UploadRejectsInvalidImages(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	store, err := NewFileStore(t.TempDir(), "", "orders", logger)
	require.NoError(t, err)

	tests := []struct {
		name     string
		img      *model.ImageUpload
		expected error
	}{
		{"Nil image", nil, ErrEmptyImage},
		{"Empty data", &model.ImageUpload{Filename: "a.png"}, ErrEmptyImage},
		{"Disallowed extension", &model.ImageUpload{Filename: "a.exe", Data: []byte("x")}, ErrUnsupportedImage},
		{"No extension", &model.ImageUpload{Filename: "image", Data: []byte("x")}, ErrUnsupportedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := store.Upload(ctx, tt.img)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected))
			assert.Empty(t, ref)
		})
	}
}

func TestFileStore_RelativeReference(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "", "", zerolog.Nop())
	require.NoError(t, err)

	ref, err := store.Upload(context.Background(), &model.ImageUpload{Filename: "x.gif", Data: []byte("gif")})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/upload/"))
	id, ok := ExtractAssetID(ref)
	assert.True(t, ok)
	assert.NotContains(t, id, "/")
}

func TestFileStore_DeleteErrors(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "", "orders", zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Unknown asset", func(t *testing.T) {
		err := store.Delete(ctx, "orders/missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("Traversal is refused", func(t *testing.T) {
		err := store.Delete(ctx, "../etc/passwd")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidAssetID))
	})

	t.Run("Absolute id is refused", func(t *testing.T) {
		err := store.Delete(ctx, "/tmp/x")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidAssetID))
	})
}

func TestDisabledStore(t *testing.T) {
	store := NewDisabledStore()
	ctx := context.Background()

	_, err := store.Upload(ctx, &model.ImageUpload{Filename: "a.png", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrStoreDisabled)
	assert.ErrorIs(t, store.Delete(ctx, "orders/a"), ErrStoreDisabled)
}

package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAssetID(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		expectedID string
		expectedOK bool
	}{
		{
			name:       "Versioned URL with folder",
			ref:        "https://host/upload/v1700000000/folder/img.jpg",
			expectedID: "folder/img",
			expectedOK: true,
		},
		{
			name:       "Cloud style URL with resource prefix",
			ref:        "https://res.example.com/demo/image/upload/v1699999999/orders/abc123.png",
			expectedID: "orders/abc123",
			expectedOK: true,
		},
		{
			name:       "No version segment",
			ref:        "https://host/upload/folder/img.jpeg",
			expectedID: "folder/img",
			expectedOK: true,
		},
		{
			name:       "No extension",
			ref:        "https://host/upload/v12/folder/img",
			expectedID: "folder/img",
			expectedOK: true,
		},
		{
			name:       "Only last extension is removed",
			ref:        "https://host/upload/archive.tar.gz",
			expectedID: "archive.tar",
			expectedOK: true,
		},
		{
			name:       "Dot inside folder name is kept",
			ref:        "https://host/upload/folder.v2/img",
			expectedID: "folder.v2/img",
			expectedOK: true,
		},
		{
			name:       "Query string is ignored",
			ref:        "https://host/upload/v3/folder/img.gif?width=200",
			expectedID: "folder/img",
			expectedOK: true,
		},
		{
			name:       "Double slash after marker",
			ref:        "https://host/upload//folder/img.jpg",
			expectedID: "folder/img",
			expectedOK: true,
		},
		{
			name:       "Local upload path",
			ref:        "/upload/orders/5f1c.png",
			expectedID: "orders/5f1c",
			expectedOK: true,
		},
		{
			name:       "Segment starting with v but not a version",
			ref:        "https://host/upload/vintage/img.jpg",
			expectedID: "vintage/img",
			expectedOK: true,
		},
		{
			name:       "Folder named like a version after a version",
			ref:        "https://host/upload/v1/v2/img.jpg",
			expectedOK: false,
		},
		{
			name:       "Version-like folder without a version is dropped",
			ref:        "https://host/upload/v2/img.jpg",
			expectedID: "img",
			expectedOK: true,
		},
		{
			name:       "Missing marker",
			ref:        "https://host/no-marker/img.jpg",
			expectedOK: false,
		},
		{
			name:       "Plural uploads directory is not the marker",
			ref:        "/static/uploads/img.jpg",
			expectedOK: false,
		},
		{
			name:       "Empty reference",
			ref:        "",
			expectedOK: false,
		},
		{
			name:       "Nothing after marker",
			ref:        "https://host/upload/",
			expectedOK: false,
		},
		{
			name:       "Only a version after marker",
			ref:        "https://host/upload/v170/",
			expectedOK: false,
		},
		{
			name:       "Only an extension after marker",
			ref:        "https://host/upload/.jpg",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractAssetID(tt.ref)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestExtractAssetID_Idempotent(t *testing.T) {
	refs := []string{
		"https://host/upload/v1700000000/folder/img.jpg",
		"https://host/upload/orders/2b7e1a.png",
		"https://host/upload/v9/a/b/c/d.gif",
		"/upload/plain",
		"https://host/upload/v1/v2x/img.jpg",
	}

	for _, ref := range refs {
		t.Run(ref, func(t *testing.T) {
			id, ok := ExtractAssetID(ref)
			assert.True(t, ok)

			for _, ext := range []string{".png", ".jpg", ""} {
				again, ok := ExtractAssetID("https://other-host/upload/" + id + ext)
				assert.True(t, ok)
				assert.Equal(t, id, again)
			}
		})
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, IsVersionSegment("v1"))
	assert.True(t, IsVersionSegment("v1700000000"))
	assert.False(t, IsVersionSegment("v"))
	assert.False(t, IsVersionSegment("vintage"))
	assert.False(t, IsVersionSegment("orders"))
	assert.False(t, IsVersionSegment("v1/orders"))
}

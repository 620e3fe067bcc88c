package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	var storedKey string
	store := &BlobStore{
		Bucket:        "portfolio",
		PublicBaseURL: "https://cdn.example.com",
		PutObjectFunc: func(ctx context.Context, key, contentType string, body []byte) error {
			storedKey = key
			return nil
		},
	}

	t.Run("keys under uploads/ with the original extension", func(t *testing.T) {
		url, err := store.UploadImage(context.Background(), "My Cat.JPEG", "image/jpeg", []byte("data"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(storedKey, "uploads/"))
		assert.True(t, strings.HasSuffix(storedKey, ".jpeg"))
		assert.Equal(t, "https://cdn.example.com/"+storedKey, url)
	})

	t.Run("distinct uploads never collide", func(t *testing.T) {
		_, err := store.UploadImage(context.Background(), "a.png", "image/png", []byte("x"))
		require.NoError(t, err)
		first := storedKey

		_, err = store.UploadImage(context.Background(), "a.png", "image/png", []byte("x"))
		require.NoError(t, err)
		assert.NotEqual(t, first, storedKey)
	})

	t.Run("upload failure surfaces the error", func(t *testing.T) {
		failing := &BlobStore{
			Bucket:        "portfolio",
			PublicBaseURL: "https://cdn.example.com",
			PutObjectFunc: func(ctx context.Context, key, contentType string, body []byte) error {
				return errors.New("s3 unavailable")
			},
		}

		_, err := failing.UploadImage(context.Background(), "a.png", "image/png", []byte("x"))
		assert.Error(t, err)
	})
}

func TestNewBlobStoreRequiresBucket(t *testing.T) {
	_, err := NewBlobStore(map[string]string{})
	assert.Error(t, err)
}

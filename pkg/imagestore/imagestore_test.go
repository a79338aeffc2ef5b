package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExtension(t *testing.T) {
	assert.NoError(t, CheckExtension("cake.JPG"))
	assert.NoError(t, CheckExtension("tart.webp"))
	assert.ErrorIs(t, CheckExtension("notes.txt"), ErrUnsupportedType)
	assert.ErrorIs(t, CheckExtension("noext"), ErrUnsupportedType)
}

func TestLocalStore_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "uploads"), "http://localhost:8080/")
	require.NoError(t, err)

	img, err := store.Upload(context.Background(), "Cake.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(img.PublicID, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/"+img.PublicID, img.URL)

	data, err := os.ReadFile(filepath.Join(store.Dir(), img.PublicID))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), img.PublicID))
	_, err = os.Stat(filepath.Join(store.Dir(), img.PublicID))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(context.Background(), img.PublicID), "deleting twice is fine")
}

func TestLocalStore_RejectsNonImages(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)
	_, err = store.Upload(context.Background(), "script.sh", strings.NewReader("#!/bin/sh"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestNewCloudinaryStore(t *testing.T) {
	store, err := NewCloudinaryStore("demo", "key", "secret")
	require.NoError(t, err)
	assert.Equal(t, ProductsFolder, store.folder)

	_, err = store.Upload(context.Background(), "readme.md", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

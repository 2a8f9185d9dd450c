package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedExtension(t *testing.T) {
	cases := []struct {
		filename string
		allowed  bool
	}{
		{"photo.png", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"PHOTO.PNG", true},
		{"photo.JPeG", true},
		{"archive.png.zip", false},
		{"script.exe", false},
		{"photo.gif", false},
		{"noextension", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, AllowedExtension(tc.filename), tc.filename)
	}
}

func TestRandomFileName(t *testing.T) {
	name, err := RandomFileName("Holiday Photo.JPG")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".jpg"), name)
	assert.Len(t, name, 32+len(".jpg"))
	assert.NotContains(t, name, " ")

	other, err := RandomFileName("Holiday Photo.JPG")
	require.NoError(t, err)
	assert.NotEqual(t, name, other, "names must not collide")
}

func TestNewStorage_UnsupportedType(t *testing.T) {
	_, err := NewStorage(Config{Type: "s3"})
	assert.Error(t, err)
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	content := []byte("fake image bytes")
	err = store.Save(ctx, "abc123.png", bytes.NewReader(content), "image/png")
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "abc123.png")
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Get(ctx, "abc123.png")
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	err = store.Delete(ctx, "abc123.png")
	require.NoError(t, err)

	exists, err = store.Exists(ctx, "abc123.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoOp(t *testing.T) {
	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.png"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()

	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	url, err := store.GetURL(ctx, "abc.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/abc.png", url)

	store, err = NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com/uploads"})
	require.NoError(t, err)
	url, err = store.GetURL(ctx, "abc.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/abc.png", url)
}

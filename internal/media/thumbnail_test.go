package media

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, imaging.Save(img, path))
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestThumbnailResizesAndCaches(t *testing.T) {
	public := t.TempDir()
	cache := filepath.Join(t.TempDir(), "images")
	writeTestImage(t, public, "images/wide.png", 1200, 600)

	th := NewThumbnailer(public, cache)
	require.NoError(t, th.EnsureCacheDir())

	data, err := th.Thumbnail("/images/wide.png", SizeThumb)
	require.NoError(t, err)
	bounds := decode(t, data).Bounds()
	assert.Equal(t, 300, bounds.Dx())
	assert.Equal(t, 150, bounds.Dy())

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	again, err := th.Thumbnail("images/wide.png", SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	medium, err := th.Thumbnail("images/wide.png", SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, 800, decode(t, medium).Bounds().Dx())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	public := t.TempDir()
	writeTestImage(t, public, "tall.png", 100, 200)

	data, err := NewThumbnailer(public, t.TempDir()).Thumbnail("tall.png", SizeMedium)
	require.NoError(t, err)
	bounds := decode(t, data).Bounds()
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 200, bounds.Dy())
}

func TestThumbnailErrors(t *testing.T) {
	th := NewThumbnailer(t.TempDir(), t.TempDir())

	_, err := th.Thumbnail("a.png", "huge")
	assert.ErrorIs(t, err, ErrUnknownSize)

	_, err = th.Thumbnail("../secret.png", SizeThumb)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = th.Thumbnail("missing.png", SizeThumb)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

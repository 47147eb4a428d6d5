package media

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"

	qualityThumb  = 60
	qualityMedium = 75

	maxSizeThumb  = 300
	maxSizeMedium = 800
)

var (
	ErrUnknownSize = errors.New("unknown thumbnail size")
	ErrInvalidPath = errors.New("invalid image path")
)

// Thumbnailer serves resized JPEG copies of images under a public
// directory, caching each result on disk.
type Thumbnailer struct {
	publicDir string
	cacheDir  string
}

func NewThumbnailer(publicDir, cacheDir string) *Thumbnailer {
	return &Thumbnailer{publicDir: publicDir, cacheDir: cacheDir}
}

// EnsureCacheDir creates the cache directory if it does not exist.
func (t *Thumbnailer) EnsureCacheDir() error {
	if err := os.MkdirAll(t.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Thumbnail returns the JPEG bytes for the image at name, relative to the
// public directory, at the given size.
func (t *Thumbnailer) Thumbnail(name, size string) ([]byte, error) {
	maxDim, quality, err := sizeSettings(size)
	if err != nil {
		return nil, err
	}

	source, err := t.sourcePath(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	cachePath := t.cachePath(name, size, info.ModTime().UnixNano())
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	img, err := imaging.Open(source, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	data, err := Optimize(img, maxDim, quality)
	if err != nil {
		return nil, err
	}

	if err := t.save(cachePath, data); err != nil {
		// serving the fresh bytes still works without the cache
		slog.Warn("Unable to cache thumbnail", "path", cachePath, "err", err)
	}
	return data, nil
}

// Optimize fits img within maxDim on its longer side and encodes it as JPEG.
func Optimize(img image.Image, maxDim, quality int) ([]byte, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxDim || height > maxDim {
		if width > height {
			img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func sizeSettings(size string) (maxDim, quality int, err error) {
	switch size {
	case SizeThumb:
		return maxSizeThumb, qualityThumb, nil
	case SizeMedium:
		return maxSizeMedium, qualityMedium, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
}

func (t *Thumbnailer) sourcePath(name string) (string, error) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "/")
	if name == "" || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return filepath.Join(t.publicDir, filepath.FromSlash(name)), nil
}

func (t *Thumbnailer) cachePath(name, size string, modTime int64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d", name, modTime))
	return filepath.Join(t.cacheDir, fmt.Sprintf("%s_%s.jpg", hex.EncodeToString(sum[:8]), size))
}

func (t *Thumbnailer) save(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	slog.Debug("Image cached", "path", cachePath)
	return nil
}

package display

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wide.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))))
	require.NoError(t, f.Close())
	return path
}

func TestLoadFitsKeepingAspect(t *testing.T) {
	img, err := Load(writePNG(t, 400, 200), 100, 100)
	require.NoError(t, err)

	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestLoadNeverEnlarges(t *testing.T) {
	img, err := Load(writePNG(t, 40, 20), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
}

func TestFitUnbounded(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 500, 500))
	assert.Same(t, src, Fit(src, 0, 0))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("garbage"), 0644))

	_, err := Load(broken, 10, 10)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnreadable))

	_, err = Load(filepath.Join(dir, "missing.png"), 10, 10)
	assert.True(t, apperrors.Is(err, apperrors.ErrStaleEntry))
}

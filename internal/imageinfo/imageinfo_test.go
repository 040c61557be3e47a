package imageinfo

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
)

func writeFile(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f))
	require.NoError(t, f.Close())
	return path
}

func TestLoadPNG(t *testing.T) {
	path := writeFile(t, "gray.PNG", func(f *os.File) error {
		return png.Encode(f, image.NewGray(image.Rect(0, 0, 40, 30)))
	})

	info, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gray.PNG", info.Name)
	assert.Equal(t, 40, info.Width)
	assert.Equal(t, 30, info.Height)
	assert.Equal(t, "PNG", info.Format)
	assert.Equal(t, "Gray", info.ColorMode)
	assert.Empty(t, info.CameraModel, "no EXIF in a PNG")

	rows := info.Rows()
	assert.Equal(t, Row{"Dimensions", "40 x 30"}, rows[1])
	assert.Equal(t, Row{"Camera", Placeholder}, rows[5])
}

func TestLoadGIF(t *testing.T) {
	path := writeFile(t, "dot.gif", func(f *os.File) error {
		img := image.NewPaletted(image.Rect(0, 0, 3, 3), color.Palette{color.Black, color.White})
		return gif.Encode(f, img, nil)
	})

	info, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GIF", info.Format)
	assert.Equal(t, "Paletted", info.ColorMode)
}

func TestLoadBMP(t *testing.T) {
	path := writeFile(t, "scan.bmp", func(f *os.File) error {
		return bmp.Encode(f, image.NewGray(image.Rect(0, 0, 8, 4)))
	})

	info, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BMP", info.Format)
	assert.Equal(t, 8, info.Width)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "fake.jpg")
	require.NoError(t, os.WriteFile(fake, []byte("not an image"), 0644))

	_, err := Load(fake)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnreadable))

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.True(t, apperrors.Is(err, apperrors.ErrStaleEntry))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 bytes", FormatSize(512))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "2.0 MB", FormatSize(2*1024*1024))
}

func TestEmpty(t *testing.T) {
	rows := Empty()
	require.Len(t, rows, 7)
	for _, r := range rows {
		assert.Equal(t, Placeholder, r.Value, r.Label)
	}
}

// Package imageinfo gathers the metadata shown in the statistics panel.
package imageinfo

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
)

// Placeholder is shown for unknown or cleared values.
const Placeholder = "-"

// Info describes one decoded image file.
type Info struct {
	Path      string
	Name      string
	Width     int
	Height    int
	Format    string
	Size      int64
	ColorMode string

	// From EXIF, when present.
	CameraMake  string
	CameraModel string
	Taken       time.Time
}

// Row is one label/value line of the statistics panel.
type Row struct {
	Label string
	Value string
}

// Load decodes the header of path and collects its metadata. Files that are
// not decodable images yield ErrUnreadable.
func Load(path string) (*Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.New(apperrors.StaleEntry, path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.New(apperrors.Unreadable, path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, apperrors.New(apperrors.Unreadable, path, err)
	}

	info := &Info{
		Path:      path,
		Name:      filepath.Base(path),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    strings.ToUpper(format),
		Size:      stat.Size(),
		ColorMode: colorMode(cfg.ColorModel),
	}

	if _, err := f.Seek(0, 0); err == nil {
		readExif(f, info)
	}
	return info, nil
}

func readExif(f *os.File, info *Info) {
	x, err := exif.Decode(f)
	if err != nil {
		return
	}
	if tag, err := x.Get(exif.Make); err == nil {
		if v, err := tag.StringVal(); err == nil {
			info.CameraMake = strings.TrimSpace(v)
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if v, err := tag.StringVal(); err == nil {
			info.CameraModel = strings.TrimSpace(v)
		}
	}
	if taken, err := x.DateTime(); err == nil {
		info.Taken = taken
	}
}

func colorMode(m color.Model) string {
	switch m {
	case color.RGBAModel, color.NRGBAModel:
		return "RGBA"
	case color.RGBA64Model, color.NRGBA64Model:
		return "RGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "Alpha"
	}
	if _, ok := m.(color.Palette); ok {
		return "Paletted"
	}
	return "N/A"
}

// FormatSize renders a byte count the way the statistics panel shows it.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
}

// Rows returns the statistics panel lines for info.
func (i *Info) Rows() []Row {
	camera := strings.TrimSpace(i.CameraMake + " " + i.CameraModel)
	taken := Placeholder
	if !i.Taken.IsZero() {
		taken = i.Taken.Format("2006-01-02 15:04:05")
	}
	return []Row{
		{"Filename", i.Name},
		{"Dimensions", fmt.Sprintf("%d x %d", i.Width, i.Height)},
		{"Format", orPlaceholder(i.Format)},
		{"File Size", FormatSize(i.Size)},
		{"Color Mode", orPlaceholder(i.ColorMode)},
		{"Camera", orPlaceholder(camera)},
		{"Taken", taken},
	}
}

// Empty returns the cleared statistics panel lines.
func Empty() []Row {
	labels := []string{"Filename", "Dimensions", "Format", "File Size", "Color Mode", "Camera", "Taken"}
	rows := make([]Row, len(labels))
	for i, l := range labels {
		rows[i] = Row{l, Placeholder}
	}
	return rows
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

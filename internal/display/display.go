// Package display prepares decoded images for the display pane.
package display

import (
	"image"
	"os"

	"github.com/disintegration/imaging"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
)

// Load decodes path, applies its EXIF orientation and scales it down to fit
// within maxW x maxH keeping the aspect ratio. Images already inside the
// bounds are returned at native size. A non-positive bound disables scaling.
func Load(path string, maxW, maxH int) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.New(apperrors.StaleEntry, path, err)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.New(apperrors.Unreadable, path, err)
	}
	return Fit(img, maxW, maxH), nil
}

// Fit scales img down to the bounds; it never enlarges.
func Fit(img image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 || maxH <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

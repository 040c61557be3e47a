// Package detect defines the object detection capability and draws its
// output over images. Inference itself is supplied from outside.
package detect

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
)

// Detection is one detected object in image coordinates.
type Detection struct {
	Box   image.Rectangle
	Label string
	Score float64
}

// Detector runs inference on a decoded image.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Detection, error)
	// Available reports whether Detect can succeed at all; the UI disables
	// its detection action otherwise.
	Available() bool
}

// Unavailable is the detector used when no model is configured.
type Unavailable struct{}

// Detect always fails with ErrUnavailable.
func (Unavailable) Detect(context.Context, image.Image) ([]Detection, error) {
	return nil, apperrors.ErrUnavailable
}

// Available reports false.
func (Unavailable) Available() bool { return false }

// Func adapts a plain function into a Detector.
type Func func(ctx context.Context, img image.Image) ([]Detection, error)

// Detect calls f.
func (f Func) Detect(ctx context.Context, img image.Image) ([]Detection, error) {
	return f(ctx, img)
}

// Available reports true.
func (Func) Available() bool { return true }

// BoxColor is the outline colour of drawn detections.
var BoxColor = color.NRGBA{R: 255, G: 40, B: 40, A: 255}

const lineWidth = 2

// Overlay returns a copy of img with an outline around every detection
// scoring at least minScore. img itself is not modified.
func Overlay(img image.Image, dets []Detection, minScore float64) *image.NRGBA {
	// Clone rebases the copy to (0,0).
	origin := img.Bounds().Min
	out := imaging.Clone(img)
	bounds := out.Bounds()
	for _, d := range dets {
		if d.Score < minScore {
			continue
		}
		box := d.Box.Sub(origin).Intersect(bounds)
		if box.Empty() {
			continue
		}
		drawOutline(out, box)
	}
	return out
}

func drawOutline(img *image.NRGBA, r image.Rectangle) {
	for w := 0; w < lineWidth; w++ {
		inner := r.Inset(w)
		if inner.Empty() {
			return
		}
		for x := inner.Min.X; x < inner.Max.X; x++ {
			img.SetNRGBA(x, inner.Min.Y, BoxColor)
			img.SetNRGBA(x, inner.Max.Y-1, BoxColor)
		}
		for y := inner.Min.Y; y < inner.Max.Y; y++ {
			img.SetNRGBA(inner.Min.X, y, BoxColor)
			img.SetNRGBA(inner.Max.X-1, y, BoxColor)
		}
	}
}

// Summary returns one console line per detection, highest score first.
func Summary(dets []Detection, minScore float64) []string {
	kept := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if d.Score >= minScore {
			kept = append(kept, d)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })

	lines := make([]string, 0, len(kept))
	for _, d := range kept {
		lines = append(lines, fmt.Sprintf("%s: %.0f%% at (%d,%d)-(%d,%d)",
			d.Label, d.Score*100, d.Box.Min.X, d.Box.Min.Y, d.Box.Max.X, d.Box.Max.Y))
	}
	return lines
}

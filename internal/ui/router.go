package ui

import (
	"context"
	"image"
	"path/filepath"
	"sync"

	"github.com/Akaiko1/image-viewer/internal/detect"
	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
	"github.com/Akaiko1/image-viewer/internal/events"
	"github.com/Akaiko1/image-viewer/internal/imageinfo"
)

// Surface is the image pane.
type Surface interface {
	ShowImage(path string, img image.Image)
	ShowMessage(msg string)
}

// MetadataPanel is the statistics pane.
type MetadataPanel interface {
	ShowInfo(info *imageinfo.Info)
	Clear()
}

// LogSink receives status lines for the user.
type LogSink interface {
	Log(format string, args ...interface{})
}

const noImageMessage = "No image selected"

// router turns browser selections into updates of the surface, the metadata
// panel and the log sink. Its handlers may run on any goroutine.
type router struct {
	surface   Surface
	panel     MetadataPanel
	sink      LogSink
	detector  detect.Detector
	minScore  float64
	maxWidth  int
	maxHeight int

	loadImage func(path string, maxW, maxH int) (image.Image, error)
	loadInfo  func(path string) (*imageinfo.Info, error)

	mu      sync.Mutex
	current string
	decoded image.Image
}

// subscribe attaches the router to both selection topics.
func (r *router) subscribe(bus *events.Bus) error {
	if err := bus.OnItem(r.handleItem); err != nil {
		return err
	}
	return bus.OnImage(r.handleImage)
}

func (r *router) handleItem(sel events.Selection) {
	name := filepath.Base(sel.Path)
	switch {
	case sel.IsDir:
		r.sink.Log("Selected directory: %s", name)
	case !sel.IsImage:
		r.sink.Log("Selected non-image file: %s", name)
	}
}

func (r *router) handleImage(sel events.Selection) {
	name := filepath.Base(sel.Path)

	info, err := r.loadInfo(sel.Path)
	if err == nil {
		var img image.Image
		img, err = r.loadImage(sel.Path, r.maxWidth, r.maxHeight)
		if err == nil {
			r.setCurrent(sel.Path, img)
			r.surface.ShowImage(sel.Path, img)
			r.panel.ShowInfo(info)
			r.sink.Log("Loaded image: %s", name)
			return
		}
	}

	r.setCurrent("", nil)
	r.panel.Clear()
	switch {
	case apperrors.Is(err, apperrors.ErrStaleEntry):
		r.surface.ShowMessage(noImageMessage)
		r.sink.Log("Error: File not found - %s", sel.Path)
	case apperrors.Is(err, apperrors.ErrUnreadable):
		r.surface.ShowMessage("Cannot read file:\n" + name)
		r.sink.Log("Error reading image file: %s", name)
	default:
		r.surface.ShowMessage(noImageMessage)
		r.sink.Log("Error loading image '%s': %v", name, err)
	}
}

func (r *router) setCurrent(path string, img image.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = path
	r.decoded = img
}

// currentPath returns the displayed image path, "" when none.
func (r *router) currentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// detectCurrent runs the detector on the displayed image and shows the
// overlay. It returns the number of detections drawn.
func (r *router) detectCurrent(ctx context.Context) (int, error) {
	r.mu.Lock()
	path, img := r.current, r.decoded
	r.mu.Unlock()

	if img == nil {
		r.sink.Log("No image loaded for detection")
		return 0, apperrors.New(apperrors.StaleEntry, "", nil)
	}
	if r.detector == nil || !r.detector.Available() {
		r.sink.Log("Object detection is not available")
		return 0, apperrors.ErrUnavailable
	}

	dets, err := r.detector.Detect(ctx, img)
	if err != nil {
		r.sink.Log("Detection failed for %s: %v", filepath.Base(path), err)
		return 0, err
	}

	lines := detect.Summary(dets, r.minScore)
	r.surface.ShowImage(path, detect.Overlay(img, dets, r.minScore))
	r.sink.Log("Detected %d object(s) in %s", len(lines), filepath.Base(path))
	for _, line := range lines {
		r.sink.Log("  %s", line)
	}
	return len(lines), nil
}

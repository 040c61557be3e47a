package browser

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
	"github.com/Akaiko1/image-viewer/internal/events"
	"github.com/Akaiko1/image-viewer/internal/rootpath"
)

// fixture lays out:
//
//	base/img/            root
//	base/img/Photos/
//	base/img/Photos/cat.jpeg
//	base/img/pic.PNG
//	base/img/notes.txt
//	base/img/.thumbs/
//	base/img2/stray.png  sibling sharing the root's name as a prefix
func fixture(t *testing.T) (base, root string) {
	t.Helper()
	base = t.TempDir()
	root = filepath.Join(base, "img")
	for _, d := range []string{"img/Photos", "img/.thumbs", "img2"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, d), 0755))
	}
	for _, f := range []string{"img/Photos/cat.jpeg", "img/pic.PNG", "img/notes.txt", "img2/stray.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(base, f), []byte("x"), 0644))
	}
	return base, root
}

func newTestBrowser(t *testing.T, root string, opts Options) (*Browser, *events.Recorder) {
	t.Helper()
	res, err := rootpath.Discover(root, "", "", rootpath.OSLookup{})
	require.NoError(t, err)
	filter, err := NewExtensionFilter([]string{"jpg", "jpeg", "png", "gif", "bmp"})
	require.NoError(t, err)
	rec := &events.Recorder{}
	b, err := New(res, filter, rec, opts)
	require.NoError(t, err)
	return b, rec
}

func TestActivateClassification(t *testing.T) {
	base, root := fixture(t)
	b, rec := newTestBrowser(t, root, Options{SortDirs: true})

	tests := []struct {
		name   string
		path   string
		kind   Kind
		topics []events.Topic
	}{
		{"directory", filepath.Join(root, "Photos"), Item, []events.Topic{events.ItemSelected}},
		{"image upper-case suffix", filepath.Join(root, "pic.PNG"), ItemAndImage, []events.Topic{events.ItemSelected, events.ImageSelected}},
		{"nested image", filepath.Join(root, "Photos", "cat.jpeg"), ItemAndImage, []events.Topic{events.ItemSelected, events.ImageSelected}},
		{"non-image file", filepath.Join(root, "notes.txt"), Item, []events.Topic{events.ItemSelected}},
		{"root itself", root, Item, []events.Topic{events.ItemSelected}},
		{"sibling with shared prefix", filepath.Join(base, "img2", "stray.png"), Discarded, []events.Topic{}},
		{"parent of root", base, Discarded, []events.Topic{}},
		{"escape through dot-dot", filepath.Join(root, "..", "img2"), Discarded, []events.Topic{}},
		{"vanished file", filepath.Join(root, "gone.png"), Discarded, []events.Topic{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.Reset()
			res := b.Activate(tt.path)

			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.topics, rec.Topics())
			for _, e := range rec.Events() {
				assert.Equal(t, tt.path, e.Path, "events carry the original path")
				assert.True(t, b.Contains(e.Path))
			}
		})
	}
}

func TestActivateReasons(t *testing.T) {
	base, root := fixture(t)
	b, _ := newTestBrowser(t, root, Options{})

	res := b.Activate(filepath.Join(base, "img2"))
	assert.True(t, apperrors.Is(res.Reason, apperrors.ErrOutsideRoot))

	res = b.Activate(filepath.Join(root, "gone.png"))
	assert.True(t, apperrors.Is(res.Reason, apperrors.ErrStaleEntry))

	res = b.Activate("")
	assert.Equal(t, Discarded, res.Kind)
}

func TestActivateDirectoryNamedLikeImage(t *testing.T) {
	_, root := fixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "album.jpg"), 0755))
	b, rec := newTestBrowser(t, root, Options{})

	res := b.Activate(filepath.Join(root, "album.jpg"))

	assert.Equal(t, Item, res.Kind)
	assert.True(t, res.IsDir)
	assert.Equal(t, []events.Topic{events.ItemSelected}, rec.Topics())
}

func TestChildren(t *testing.T) {
	_, root := fixture(t)
	b, _ := newTestBrowser(t, root, Options{SortDirs: true})

	entries, err := b.Children("")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Photos", "notes.txt", "pic.PNG"}, names, "dirs first, hidden skipped")

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.True(t, byName["notes.txt"].Dimmed)
	assert.False(t, byName["pic.PNG"].Dimmed)
	assert.True(t, byName["pic.PNG"].IsImage)
	assert.False(t, byName["Photos"].Dimmed, "directories are never dimmed")
}

func TestChildrenShowHidden(t *testing.T) {
	_, root := fixture(t)
	b, _ := newTestBrowser(t, root, Options{ShowHidden: true, SortDirs: true})

	entries, err := b.Children(root)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, ".thumbs", entries[0].Name)
}

func TestChildrenOutsideRoot(t *testing.T) {
	base, root := fixture(t)
	b, _ := newTestBrowser(t, root, Options{})

	_, err := b.Children(base)
	assert.True(t, apperrors.Is(err, apperrors.ErrOutsideRoot))

	_, err = b.Children(filepath.Join(base, "img2"))
	assert.True(t, apperrors.Is(err, apperrors.ErrOutsideRoot))
}

func TestDisabledWhenRootUnlistable(t *testing.T) {
	_, root := fixture(t)
	res, err := rootpath.Discover(root, "", "", rootpath.OSLookup{})
	require.NoError(t, err)
	filter, err := NewExtensionFilter([]string{"png"})
	require.NoError(t, err)

	rec := &events.Recorder{}
	b, err := New(res, filter, rec, Options{
		ReadDir: func(string) ([]fs.DirEntry, error) { return nil, fs.ErrPermission },
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrRootUnavailable))
	require.NotNil(t, b)
	assert.False(t, b.Enabled())

	result := b.Activate(filepath.Join(root, "pic.PNG"))
	assert.Equal(t, Discarded, result.Kind)
	assert.Empty(t, rec.Events())

	_, err = b.Children("")
	assert.Error(t, err)
}

func TestNewRequiresFilter(t *testing.T) {
	_, err := New(rootpath.Resolution{}, nil, nil, Options{})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "discarded", Discarded.String())
	assert.Equal(t, "item", Item.String())
	assert.Equal(t, "item+image", ItemAndImage.String())
}

package ui

import (
	"errors"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akaiko1/image-viewer/internal/browser"
	"github.com/Akaiko1/image-viewer/internal/rootpath"
)

func TestTreeReportsRepeatedTaps(t *testing.T) {
	test.NewTempApp(t)
	m, _, root := newTestModel(t)

	tree := widget.NewTree(m.childUIDs, m.isBranch,
		func(bool) fyne.CanvasObject { return widget.NewLabel("") },
		func(widget.TreeNodeID, bool, fyne.CanvasObject) {},
	)
	tree.Root = m.rootID()

	var kinds []browser.Kind
	bindActivation(tree, func(uid widget.TreeNodeID) {
		kinds = append(kinds, m.browser.Activate(uid).Kind)
	})

	pic := filepath.Join(root, "pic.png")
	tree.Select(pic)
	tree.Select(pic)
	tree.Select(filepath.Join(root, "notes.txt"))

	assert.Equal(t, []browser.Kind{browser.ItemAndImage, browser.ItemAndImage, browser.Item}, kinds)
}

func TestNoticeForRoot(t *testing.T) {
	t.Run("discovered", func(t *testing.T) {
		_, ok := noticeForRoot(rootpath.Resolution{Original: "/a/images", Source: rootpath.Discovered}, nil)
		assert.False(t, ok)
	})

	t.Run("fallback warns", func(t *testing.T) {
		n, ok := noticeForRoot(rootpath.Resolution{Original: "/work", Source: rootpath.Fallback}, nil)
		require.True(t, ok)
		assert.NoError(t, n.Err)
		assert.Equal(t, "Image Folder Not Found", n.Title)
		assert.Contains(t, n.Message, "/work")
	})

	t.Run("unavailable is an error", func(t *testing.T) {
		cause := errors.New("gone")
		n, ok := noticeForRoot(rootpath.Resolution{}, cause)
		require.True(t, ok)
		assert.Equal(t, cause, n.Err)
		assert.Equal(t, "Image Folder Unavailable", n.Title)
	})
}

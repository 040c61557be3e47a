package clipboard

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
)

// ClipboardManager copies text out of the viewer.
type ClipboardManager interface {
	SetContent(content string) error
}

// FyneClipboardManager implements ClipboardManager using Fyne's clipboard.
type FyneClipboardManager struct {
	clipboard fyne.Clipboard
}

// NewFyneClipboardManager creates a new FyneClipboardManager.
func NewFyneClipboardManager(clipboard fyne.Clipboard) *FyneClipboardManager {
	return &FyneClipboardManager{clipboard: clipboard}
}

// SetContent replaces the clipboard content. Blank content is refused so a
// stray click never wipes what the user copied elsewhere.
func (c *FyneClipboardManager) SetContent(content string) error {
	if c.clipboard == nil {
		return fmt.Errorf("clipboard is not available")
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("nothing to copy")
	}
	c.clipboard.SetContent(content)
	return nil
}

package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type memoryClipboard struct {
	content string
}

func (m *memoryClipboard) Content() string           { return m.content }
func (m *memoryClipboard) SetContent(content string) { m.content = content }

func TestSetContent(t *testing.T) {
	mem := &memoryClipboard{content: "previous"}
	c := NewFyneClipboardManager(mem)

	assert.NoError(t, c.SetContent("/r/pic.png"))
	assert.Equal(t, "/r/pic.png", mem.content)

	assert.Error(t, c.SetContent("  "))
	assert.Equal(t, "/r/pic.png", mem.content)
}

func TestSetContentWithoutClipboard(t *testing.T) {
	assert.Error(t, NewFyneClipboardManager(nil).SetContent("x"))
}

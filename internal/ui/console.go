package ui

import (
	"fmt"
	"strings"
	"sync"
)

// Console is the log sink behind the console pane: a bounded list of status
// lines, newest last. It also accepts raw writes so diagnostics can be
// mirrored into it.
type Console struct {
	mu       sync.Mutex
	lines    []string
	max      int
	partial  string
	onChange func()
}

// NewConsole keeps at most max lines.
func NewConsole(max int) *Console {
	if max < 1 {
		max = 1
	}
	return &Console{max: max}
}

// OnChange registers fn to run after every update. fn runs on the caller's
// goroutine.
func (c *Console) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Log appends one formatted status line.
func (c *Console) Log(format string, args ...interface{}) {
	c.mu.Lock()
	c.appendLocked(fmt.Sprintf(format, args...))
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Write implements io.Writer; each complete line becomes a console line.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	text := c.partial + string(p)
	parts := strings.Split(text, "\n")
	c.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		c.appendLocked(strings.TrimRight(line, "\r"))
	}
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil && len(parts) > 1 {
		fn()
	}
	return len(p), nil
}

func (c *Console) appendLocked(line string) {
	c.lines = append(c.lines, line)
	if over := len(c.lines) - c.max; over > 0 {
		c.lines = append(c.lines[:0], c.lines[over:]...)
	}
}

// Lines returns a copy of the current lines.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Line returns line i, or "" when out of range.
func (c *Console) Line(i int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.lines) {
		return ""
	}
	return c.lines[i]
}

// Clear drops every line.
func (c *Console) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.partial = ""
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

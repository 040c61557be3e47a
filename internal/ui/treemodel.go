package ui

import (
	"sync"

	"github.com/Akaiko1/image-viewer/internal/browser"
	"github.com/Akaiko1/image-viewer/internal/logging"
)

// treeModel feeds widget.Tree from the browser. Node IDs are absolute paths;
// listings are cached per directory until invalidated.
type treeModel struct {
	browser *browser.Browser
	log     *logging.Logger

	mu      sync.Mutex
	listing map[string][]browser.Entry
	entries map[string]browser.Entry
}

func newTreeModel(b *browser.Browser, log *logging.Logger) *treeModel {
	return &treeModel{
		browser: b,
		log:     log,
		listing: make(map[string][]browser.Entry),
		entries: make(map[string]browser.Entry),
	}
}

// rootID is the tree's pinned root.
func (m *treeModel) rootID() string {
	return m.browser.Root().Original
}

// childUIDs returns the child IDs of uid. Anything the browser refuses to
// list, including every path outside the root, has no children.
func (m *treeModel) childUIDs(uid string) []string {
	if uid == "" {
		uid = m.rootID()
	}

	m.mu.Lock()
	cached, ok := m.listing[uid]
	m.mu.Unlock()
	if !ok {
		entries, err := m.browser.Children(uid)
		if err != nil {
			m.log.Debug().Err(err).Str("path", uid).Msg("listing unavailable")
			entries = nil
		}
		m.mu.Lock()
		m.listing[uid] = entries
		for _, e := range entries {
			m.entries[e.Path] = e
		}
		m.mu.Unlock()
		cached = entries
	}

	ids := make([]string, 0, len(cached))
	for _, e := range cached {
		ids = append(ids, e.Path)
	}
	return ids
}

// isBranch reports whether uid is a directory.
func (m *treeModel) isBranch(uid string) bool {
	if uid == "" || uid == m.rootID() {
		return true
	}
	e, ok := m.entry(uid)
	return ok && e.IsDir
}

// entry returns the cached entry for uid.
func (m *treeModel) entry(uid string) (browser.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[uid]
	return e, ok
}

// invalidate forgets the listing of dir so the next refresh relists it.
func (m *treeModel) invalidate(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.listing[dir] {
		delete(m.entries, e.Path)
	}
	delete(m.listing, dir)
}

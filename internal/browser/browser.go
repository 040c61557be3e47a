// Package browser implements the root-confined file browser: directory
// listings that never leave the root and classification of user activations
// into item and image selections.
package browser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
	"github.com/Akaiko1/image-viewer/internal/events"
	"github.com/Akaiko1/image-viewer/internal/logging"
	"github.com/Akaiko1/image-viewer/internal/rootpath"
)

// Kind tags the outcome of an activation.
type Kind int

const (
	Discarded    Kind = iota // nothing emitted
	Item                     // item-selected only
	ItemAndImage             // item-selected then image-selected
)

func (k Kind) String() string {
	switch k {
	case Item:
		return "item"
	case ItemAndImage:
		return "item+image"
	}
	return "discarded"
}

// Result is the classification of one activation.
type Result struct {
	Kind   Kind
	Path   string // original absolute path; empty when discarded before resolution
	IsDir  bool
	Reason error // why the activation was discarded
}

// Entry is one listed child of a directory.
type Entry struct {
	Path    string
	Name    string
	IsDir   bool
	IsImage bool
	Dimmed  bool // non-image file: shown but de-emphasized
}

// Options tune listing behaviour.
type Options struct {
	ShowHidden bool
	SortDirs   bool
	Logger     *logging.Logger
	// Stat defaults to os.Stat. Tests replace it to simulate stale entries.
	Stat func(string) (fs.FileInfo, error)
	// ReadDir defaults to os.ReadDir.
	ReadDir func(string) ([]fs.DirEntry, error)
}

// Browser is safe for concurrent reads; nothing changes after New.
type Browser struct {
	root    rootpath.Resolution
	filter  *ExtensionFilter
	pub     events.Publisher
	log     *logging.Logger
	opts    Options
	enabled bool
}

// New creates a browser over root. If the root cannot be listed the browser
// is returned disabled together with an ErrRootUnavailable error: it lists
// nothing and discards every activation.
func New(root rootpath.Resolution, filter *ExtensionFilter, pub events.Publisher, opts Options) (*Browser, error) {
	if filter == nil {
		return nil, fmt.Errorf("browser needs an extension filter")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Stat == nil {
		opts.Stat = os.Stat
	}
	if opts.ReadDir == nil {
		opts.ReadDir = os.ReadDir
	}

	b := &Browser{
		root:   root,
		filter: filter,
		pub:    pub,
		log:    opts.Logger.Component("browser"),
		opts:   opts,
	}

	if root.Original == "" {
		return b, apperrors.New(apperrors.RootUnavailable, "", fmt.Errorf("empty root"))
	}
	if _, err := opts.ReadDir(root.Original); err != nil {
		b.log.Error().Err(err).Str("root", root.Original).Msg("root cannot be listed, browser disabled")
		return b, apperrors.New(apperrors.RootUnavailable, root.Original, err)
	}
	b.enabled = true
	return b, nil
}

// Root returns the resolution the browser is pinned to.
func (b *Browser) Root() rootpath.Resolution {
	return b.root
}

// Filter returns the extension filter.
func (b *Browser) Filter() *ExtensionFilter {
	return b.filter
}

// Enabled reports whether the root was listable at construction.
func (b *Browser) Enabled() bool {
	return b.enabled
}

// Contains reports whether path lies inside the root.
func (b *Browser) Contains(path string) bool {
	return rootpath.Contains(b.root.Path, path)
}

// Children lists dir, which must lie inside the root. An empty dir lists the
// root itself.
func (b *Browser) Children(dir string) ([]Entry, error) {
	if !b.enabled {
		return nil, apperrors.ErrRootUnavailable
	}
	if dir == "" {
		dir = b.root.Original
	}
	if !b.Contains(dir) {
		b.log.Warn().Str("path", dir).Msg("refusing to list directory outside root")
		return nil, apperrors.New(apperrors.OutsideRoot, dir, nil)
	}

	dirEntries, err := b.opts.ReadDir(dir)
	if err != nil {
		return nil, apperrors.New(apperrors.StaleEntry, dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !b.opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{
			Path:  filepath.Join(dir, name),
			Name:  name,
			IsDir: de.IsDir(),
		}
		if !e.IsDir {
			e.IsImage = b.filter.Allowed(name)
			e.Dimmed = !e.IsImage
		}
		entries = append(entries, e)
	}

	if b.opts.SortDirs {
		sortEntries(entries)
	}
	return entries, nil
}

// sortEntries sorts directories first, then files, each alphabetically.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}

// Activate classifies a user activation of path and publishes the resulting
// selections:
//
//  1. resolve the absolute path;
//  2. discard it unless it lies inside the root;
//  3. publish item-selected for files and directories alike;
//  4. for files with an allowed suffix, also publish image-selected.
//
// Published paths are the original absolute path, not the case-folded form.
func (b *Browser) Activate(path string) Result {
	if !b.enabled {
		return Result{Kind: Discarded, Reason: apperrors.ErrRootUnavailable}
	}

	abs, err := filepath.Abs(path)
	if err != nil || path == "" {
		b.log.Debug().Str("path", path).Msg("activation without a resolvable path")
		return Result{Kind: Discarded, Reason: apperrors.New(apperrors.StaleEntry, path, err)}
	}

	if !b.Contains(abs) {
		b.log.Warn().Str("path", abs).Str("root", b.root.Original).Msg("activation outside root discarded")
		return Result{Kind: Discarded, Path: abs, Reason: apperrors.New(apperrors.OutsideRoot, abs, nil)}
	}

	info, err := b.opts.Stat(abs)
	if err != nil {
		b.log.Debug().Err(err).Str("path", abs).Msg("stale entry, activation dropped")
		return Result{Kind: Discarded, Path: abs, Reason: apperrors.New(apperrors.StaleEntry, abs, err)}
	}

	res := Result{Kind: Item, Path: abs, IsDir: info.IsDir()}
	isImage := !res.IsDir && b.filter.Allowed(abs)
	if isImage {
		res.Kind = ItemAndImage
	}

	sel := events.Selection{Path: abs, IsDir: res.IsDir, IsImage: isImage}
	b.publish(events.ItemSelected, sel)
	if isImage {
		b.publish(events.ImageSelected, sel)
	}
	return res
}

func (b *Browser) publish(topic events.Topic, sel events.Selection) {
	b.log.Debug().Str("topic", string(topic)).Str("path", sel.Path).Msg("publishing selection")
	if b.pub != nil {
		b.pub.Publish(topic, sel)
	}
}

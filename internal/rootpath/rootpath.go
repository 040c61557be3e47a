// Package rootpath resolves the directory the browser is confined to and
// answers containment questions against it.
package rootpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
)

// DefaultSuffixes are the directory names tried under each search base.
var DefaultSuffixes = []string{"images"}

// DefaultExtra are tried relative to the working directory after every base.
var DefaultExtra = []string{"images", filepath.Join("image_viewer", "images")}

// Source records how a root was obtained.
type Source int

const (
	Override Source = iota
	Discovered
	Fallback
)

func (s Source) String() string {
	switch s {
	case Override:
		return "override"
	case Discovered:
		return "discovered"
	case Fallback:
		return "fallback"
	}
	return "unknown"
}

// Resolution is an immutable resolved root.
type Resolution struct {
	Path     string // normalized, used for comparisons
	Original string // absolute but not case folded, used for listing and display
	Source   Source
}

// Lookup reports whether a path is an existing directory.
type Lookup interface {
	IsDir(path string) bool
}

// OSLookup queries the real filesystem.
type OSLookup struct{}

// IsDir reports whether path exists and is a directory.
func (OSLookup) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Normalize returns the comparison form of path: absolute, cleaned, with OS
// separators and case folded.
func Normalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, err)
	}
	return strings.ToLower(filepath.Clean(abs)), nil
}

// Contains reports whether candidate is root or lies beneath it. Both paths
// are normalized first and compared segment by segment, so "/data/img2" is
// not inside "/data/img".
func Contains(root, candidate string) bool {
	r, err := Normalize(root)
	if err != nil {
		return false
	}
	c, err := Normalize(candidate)
	if err != nil {
		return false
	}
	rootSegs := segments(r)
	candSegs := segments(c)
	if len(candSegs) < len(rootSegs) {
		return false
	}
	for i, seg := range rootSegs {
		if candSegs[i] != seg {
			return false
		}
	}
	return true
}

func segments(path string) []string {
	vol := filepath.VolumeName(path)
	rest := strings.Trim(path[len(vol):], string(filepath.Separator))
	segs := []string{vol}
	if rest == "" {
		return segs
	}
	return append(segs, strings.Split(rest, string(filepath.Separator))...)
}

// DefaultBases returns the search bases: the program directory, its parent
// and the working directory.
func DefaultBases(exeDir, cwd string) []string {
	return []string{exeDir, filepath.Join(exeDir, ".."), cwd}
}

// Candidates expands bases into the ordered candidate list. Each base yields
// base/<suffix> then base/../<suffix>; absolute duplicates are dropped.
func Candidates(bases, suffixes []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return
		}
		key := strings.ToLower(abs)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, abs)
	}
	for _, base := range bases {
		if base == "" {
			continue
		}
		for _, suffix := range suffixes {
			add(filepath.Join(base, suffix))
			add(filepath.Join(base, "..", suffix))
		}
	}
	return out
}

// Resolve returns the first existing directory among Candidates(bases,
// suffixes) followed by extra. It touches the filesystem only through lookup.
func Resolve(bases, extra, suffixes []string, lookup Lookup) (string, bool) {
	candidates := Candidates(bases, suffixes)
	candidates = append(candidates, extra...)
	for _, p := range candidates {
		if lookup.IsDir(p) {
			abs, err := filepath.Abs(p)
			if err != nil {
				continue
			}
			return filepath.Clean(abs), true
		}
	}
	return "", false
}

// Discover resolves the browser root. A non-empty override must be a
// directory. Without one the default search runs; when it finds nothing the
// working directory is used with Source Fallback. If cwd is not a directory
// either, Discover fails with ErrRootUnavailable.
func Discover(override, exeDir, cwd string, lookup Lookup) (Resolution, error) {
	if lookup == nil {
		lookup = OSLookup{}
	}

	if override != "" {
		if !lookup.IsDir(override) {
			return Resolution{}, apperrors.New(apperrors.InvalidConfig, override, fmt.Errorf("root override is not a directory"))
		}
		return newResolution(override, Override)
	}

	extra := make([]string, 0, len(DefaultExtra))
	for _, e := range DefaultExtra {
		extra = append(extra, filepath.Join(cwd, e))
	}
	if found, ok := Resolve(DefaultBases(exeDir, cwd), extra, DefaultSuffixes, lookup); ok {
		return newResolution(found, Discovered)
	}

	if cwd == "" || !lookup.IsDir(cwd) {
		return Resolution{}, apperrors.New(apperrors.RootUnavailable, cwd, fmt.Errorf("no image directory found and working directory is not usable"))
	}
	return newResolution(cwd, Fallback)
}

func newResolution(path string, src Source) (Resolution, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Resolution{}, apperrors.New(apperrors.RootUnavailable, path, err)
	}
	norm, err := Normalize(abs)
	if err != nil {
		return Resolution{}, apperrors.New(apperrors.RootUnavailable, path, err)
	}
	return Resolution{Path: norm, Original: filepath.Clean(abs), Source: src}, nil
}

// DiscoverFromEnvironment runs Discover against the running executable and
// the process working directory.
func DiscoverFromEnvironment(override string) (Resolution, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	exeDir := cwd
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	return Discover(override, exeDir, cwd, OSLookup{})
}

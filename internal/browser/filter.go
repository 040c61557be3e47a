package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ExtensionFilter matches file names against the Allowed Extension Set,
// ignoring case.
type ExtensionFilter struct {
	exts    []string
	pattern glob.Glob
}

// NewExtensionFilter compiles exts (without dots) into a single name glob
// of the form *.{jpg,png}.
func NewExtensionFilter(exts []string) (*ExtensionFilter, error) {
	clean := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext == "" {
			return nil, fmt.Errorf("empty extension in filter")
		}
		clean = append(clean, ext)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("extension filter needs at least one suffix")
	}

	expr := "*." + clean[0]
	if len(clean) > 1 {
		expr = "*.{" + strings.Join(clean, ",") + "}"
	}
	g, err := glob.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling extension filter %q: %w", expr, err)
	}
	return &ExtensionFilter{exts: clean, pattern: g}, nil
}

// Allowed reports whether the base name of path carries an allowed suffix.
func (f *ExtensionFilter) Allowed(path string) bool {
	return f.pattern.Match(strings.ToLower(filepath.Base(path)))
}

// Extensions returns the lower-cased suffixes.
func (f *ExtensionFilter) Extensions() []string {
	out := make([]string, len(f.exts))
	copy(out, f.exts)
	return out
}

// NameFilters returns the suffixes as *.ext patterns, the form shown to users.
func (f *ExtensionFilter) NameFilters() []string {
	out := make([]string, 0, len(f.exts))
	for _, ext := range f.exts {
		out = append(out, "*."+ext)
	}
	return out
}

package rootpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
)

// fakeFS is a Lookup over a fixed set of directories.
type fakeFS map[string]bool

func (f fakeFS) IsDir(path string) bool {
	return f[filepath.Clean(path)]
}

func TestContains(t *testing.T) {
	tests := []struct {
		root, candidate string
		want            bool
	}{
		{"/data/img", "/data/img", true},
		{"/data/img", "/data/img/", true},
		{"/data/img", "/data/img/a/b.png", true},
		{"/data/img", "/DATA/Img/Photos", true},
		{"/data/img", "/data/img2", false},
		{"/data/img", "/data/img2/a.png", false},
		{"/data/img", "/data", false},
		{"/data/img", "/data/img/../other", false},
		{"/data/img", "/data//img/./x", true},
		{"/", "/anything/at/all", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Contains(tt.root, tt.candidate), "%s in %s", tt.candidate, tt.root)
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("/Srv//Images/./Cats/")
	require.NoError(t, err)
	assert.Equal(t, "/srv/images/cats", got)
}

func TestCandidatesOrderAndDedup(t *testing.T) {
	got := Candidates([]string{"/app/bin", "/app", "/app"}, []string{"images"})
	assert.Equal(t, []string{
		"/app/bin/images",
		"/app/images",
		"/images",
	}, got)
}

func TestResolve(t *testing.T) {
	t.Run("sibling images directory", func(t *testing.T) {
		fs := fakeFS{"/images": true}
		got, ok := Resolve([]string{"/app"}, nil, DefaultSuffixes, fs)
		require.True(t, ok)
		assert.Equal(t, "/images", got)
	})

	t.Run("first hit wins", func(t *testing.T) {
		fs := fakeFS{"/opt/viewer/images": true, "/home/u/images": true}
		bases := DefaultBases("/opt/viewer/bin", "/home/u")
		got, ok := Resolve(bases, nil, DefaultSuffixes, fs)
		require.True(t, ok)
		assert.Equal(t, "/opt/viewer/images", got)
	})

	t.Run("extra candidates after bases", func(t *testing.T) {
		fs := fakeFS{"/work/image_viewer/images": true}
		got, ok := Resolve([]string{"/app"}, []string{"/work/images", "/work/image_viewer/images"}, DefaultSuffixes, fs)
		require.True(t, ok)
		assert.Equal(t, "/work/image_viewer/images", got)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, ok := Resolve([]string{"/app"}, []string{"/work/images"}, DefaultSuffixes, fakeFS{})
		assert.False(t, ok)
	})
}

func TestDiscover(t *testing.T) {
	t.Run("discovered", func(t *testing.T) {
		fs := fakeFS{"/app/images": true, "/home/user/work": true}
		res, err := Discover("", "/app/bin", "/home/user/work", fs)
		require.NoError(t, err)
		assert.Equal(t, Discovered, res.Source)
		assert.Equal(t, "/app/images", res.Path)
	})

	t.Run("fallback to working directory", func(t *testing.T) {
		fs := fakeFS{"/home/user/work": true}
		res, err := Discover("", "/app", "/home/user/work", fs)
		require.NoError(t, err)
		assert.Equal(t, Fallback, res.Source)
		assert.Equal(t, "/home/user/work", res.Path)
	})

	t.Run("fallback keeps original case", func(t *testing.T) {
		fs := fakeFS{"/home/User/Work": true}
		res, err := Discover("", "/app", "/home/User/Work", fs)
		require.NoError(t, err)
		assert.Equal(t, "/home/user/work", res.Path)
		assert.Equal(t, "/home/User/Work", res.Original)
	})

	t.Run("working directory unusable", func(t *testing.T) {
		_, err := Discover("", "/app", "/gone", fakeFS{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrRootUnavailable))
	})

	t.Run("override wins", func(t *testing.T) {
		fs := fakeFS{"/app/images": true, "/mnt/Pics": true}
		res, err := Discover("/mnt/Pics", "/app", "/app", fs)
		require.NoError(t, err)
		assert.Equal(t, Override, res.Source)
		assert.Equal(t, "/mnt/pics", res.Path)
		assert.Equal(t, "/mnt/Pics", res.Original)
	})

	t.Run("override must exist", func(t *testing.T) {
		_, err := Discover("/mnt/missing", "/app", "/app", fakeFS{"/app": true})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})
}

func TestOSLookup(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, OSLookup{}.IsDir(dir))
	assert.False(t, OSLookup{}.IsDir(file))
	assert.False(t, OSLookup{}.IsDir(filepath.Join(dir, "missing")))
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "fallback", Fallback.String())
	assert.Equal(t, "override", Override.String())
}

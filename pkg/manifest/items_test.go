package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDependencies(t *testing.T) {
	deps, err := normalizeDependencies([]DependencyItem{
		{ID: "PkgA", Version: "[1.0.0, 2.0.0)", TargetFramework: " Net45 "},
		{ID: "PkgB"},
		{ID: "  "},
		{ID: "PkgC", Version: "3.1.4"},
	})
	require.NoError(t, err)
	require.Len(t, deps, 3)

	assert.Equal(t, "PkgA", deps[0].id)
	assert.Equal(t, "net45", deps[0].framework)
	assert.Equal(t, "[1.0.0, 2.0.0)", deps[0].rng.String())

	assert.Equal(t, "PkgB", deps[1].id)
	assert.Nil(t, deps[1].rng, "versionless declaration keeps a nil range")

	assert.Equal(t, "3.1.4", deps[2].rng.String())
}

func TestNormalizeDependenciesBadVersion(t *testing.T) {
	_, err := normalizeDependencies([]DependencyItem{
		{ID: "PkgA", Version: "not-a-version"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency PkgA")
}

func TestShortFrameworkName(t *testing.T) {
	assert.Equal(t, "net45", ShortFrameworkName("  NET45 "))
	assert.Equal(t, "", ShortFrameworkName("   "))
	assert.Equal(t, "netstandard2.0", ShortFrameworkName("netstandard2.0"))
}

func TestNormalizeFilesSortsByTarget(t *testing.T) {
	files, err := normalizeFiles([]FileItem{
		{Source: "readme.txt", Target: "docs"},
		{Source: "lib.dll", Target: "Content"},
		{Source: "tool.exe", Target: "bin"},
	}, "")
	require.NoError(t, err)
	require.Len(t, files, 3)

	// Case-insensitive target order: bin, Content, docs.
	assert.Equal(t, "bin", files[0].Target)
	assert.Equal(t, "Content", files[1].Target)
	assert.Equal(t, "docs", files[2].Target)
}

func TestNormalizeFilesExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o755))
	for _, name := range []string{"a.dll", "b.dll", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(libDir, name), []byte("x"), 0o644))
	}

	files, err := normalizeFiles([]FileItem{
		{Source: "lib/*.dll", Target: "lib/net45"},
	}, dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "lib/a.dll", files[0].Source)
	assert.Equal(t, "lib/b.dll", files[1].Source)
	assert.Equal(t, "lib/net45", files[0].Target)
}

func TestNormalizeFilesLiteralWithoutBaseDir(t *testing.T) {
	files, err := normalizeFiles([]FileItem{
		{Source: "lib/*.dll", Target: "lib"},
	}, "")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "lib/*.dll", files[0].Source, "no base dir means no expansion")
}

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
)

func TestMergeScalarsOverwritesNonEmpty(t *testing.T) {
	meta := nuspec.Metadata{
		ID:          "Template.Pkg",
		Version:     "0.9.0",
		Authors:     "template authors",
		Description: "template description",
	}
	mergeScalars(&meta, Scalars{
		Version:     "1.0.0",
		Description: "task description",
	})

	assert.Equal(t, "Template.Pkg", meta.ID, "empty task value leaves template value alone")
	assert.Equal(t, "1.0.0", meta.Version)
	assert.Equal(t, "template authors", meta.Authors)
	assert.Equal(t, "task description", meta.Description)
}

func TestMergeScalarsBooleansNeverDowngrade(t *testing.T) {
	meta := nuspec.Metadata{RequireLicenseAcceptance: true}
	mergeScalars(&meta, Scalars{DevelopmentDependency: true})
	assert.True(t, meta.RequireLicenseAcceptance)
	assert.True(t, meta.DevelopmentDependency)

	mergeScalars(&meta, Scalars{})
	assert.True(t, meta.RequireLicenseAcceptance, "false never overwrites true")
	assert.True(t, meta.DevelopmentDependency)
}

func TestMergeScalarsRepository(t *testing.T) {
	meta := nuspec.Metadata{
		Repository: &nuspec.Repository{Type: "git", URL: "https://old.example/repo"},
	}
	mergeScalars(&meta, Scalars{
		Repository: &nuspec.Repository{URL: "https://new.example/repo", Commit: "abc123"},
	})
	require.NotNil(t, meta.Repository)
	assert.Equal(t, "git", meta.Repository.Type)
	assert.Equal(t, "https://new.example/repo", meta.Repository.URL)
	assert.Equal(t, "abc123", meta.Repository.Commit)

	fresh := nuspec.Metadata{}
	mergeScalars(&fresh, Scalars{Repository: &nuspec.Repository{Type: "git"}})
	require.NotNil(t, fresh.Repository)
	assert.Equal(t, "git", fresh.Repository.Type)
}

func TestMergeCollectionsAppendsWithoutDedup(t *testing.T) {
	m := nuspec.New()
	m.Metadata.DependencyGroups = []nuspec.DependencyGroup{
		{TargetFramework: "net45", Dependencies: []nuspec.Dependency{{ID: "Tmpl"}}},
	}
	m.Files = []nuspec.File{{Source: "tmpl.dll", Target: "lib"}}

	mergeCollections(m,
		[]nuspec.DependencyGroup{{TargetFramework: "net45", Dependencies: []nuspec.Dependency{{ID: "Gen"}}}},
		[]nuspec.ReferenceGroup{{References: []string{"A.dll"}}},
		[]nuspec.FrameworkAssembly{{AssemblyName: "System.Core"}},
		[]nuspec.File{{Source: "gen.dll", Target: "lib"}},
	)

	// A template net45 group and a generated net45 group remain distinct.
	require.Len(t, m.Metadata.DependencyGroups, 2)
	assert.Equal(t, "Tmpl", m.Metadata.DependencyGroups[0].Dependencies[0].ID)
	assert.Equal(t, "Gen", m.Metadata.DependencyGroups[1].Dependencies[0].ID)
	assert.Len(t, m.Metadata.ReferenceGroups, 1)
	assert.Len(t, m.Metadata.FrameworkAssemblies, 1)
	require.Len(t, m.Files, 2)
	assert.Equal(t, "tmpl.dll", m.Files[0].Source)
	assert.Equal(t, "gen.dll", m.Files[1].Source)
}

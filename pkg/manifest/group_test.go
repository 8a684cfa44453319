package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgsmith/nuspecgen/pkg/nugetver"
)

func mustRange(t *testing.T, s string) *nugetver.Range {
	t.Helper()
	r, err := nugetver.ParseRange(s)
	require.NoError(t, err)
	return r
}

func TestGroupDependenciesAggregates(t *testing.T) {
	groups := groupDependencies([]dependency{
		{id: "PkgA", rng: mustRange(t, "1.0.0")},
		{id: "PkgA", rng: mustRange(t, "[2.0.0, 3.0.0)")},
		{id: "PkgB", rng: mustRange(t, "[1.2.0, )")},
	})
	require.Len(t, groups, 1)
	group := groups[0]
	assert.Equal(t, "", group.TargetFramework)
	require.Len(t, group.Dependencies, 2)
	assert.Equal(t, "PkgA", group.Dependencies[0].ID)
	assert.Equal(t, "[2.0.0, 3.0.0)", group.Dependencies[0].Range.String())
	assert.Equal(t, "PkgB", group.Dependencies[1].ID)
	assert.Equal(t, "1.2.0", group.Dependencies[1].Range.String())
}

func TestGroupDependenciesDropsSentinel(t *testing.T) {
	groups := groupDependencies([]dependency{
		{id: SentinelID, framework: "net45"},
		{id: "PkgA", rng: mustRange(t, "1.0.0")},
	})
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Dependencies, 1)
	assert.Equal(t, "PkgA", groups[0].Dependencies[0].ID)
}

func TestGroupDependenciesSentinelOnlyFramework(t *testing.T) {
	// The sentinel is dropped before grouping, so a framework with no other
	// declarations produces no group at all.
	groups := groupDependencies([]dependency{
		{id: SentinelID, framework: "net46"},
	})
	assert.Empty(t, groups)
}

func TestGroupDependenciesOrdering(t *testing.T) {
	groups := groupDependencies([]dependency{
		{id: "zeta", framework: "net46"},
		{id: "Alpha", framework: "net46"},
		{id: "beta", framework: ""},
		{id: "alpha", framework: "net45"},
	})
	require.Len(t, groups, 3)
	// Empty framework label sorts first, then ordinal ascending.
	assert.Equal(t, "", groups[0].TargetFramework)
	assert.Equal(t, "net45", groups[1].TargetFramework)
	assert.Equal(t, "net46", groups[2].TargetFramework)

	// Ordinal identifier order puts uppercase before lowercase.
	require.Len(t, groups[2].Dependencies, 2)
	assert.Equal(t, "Alpha", groups[2].Dependencies[0].ID)
	assert.Equal(t, "zeta", groups[2].Dependencies[1].ID)
}

func TestGroupDependenciesUnconstrained(t *testing.T) {
	groups := groupDependencies([]dependency{
		{id: "PkgA"},
		{id: "PkgA"},
	})
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Dependencies, 1)
	assert.Nil(t, groups[0].Dependencies[0].Range, "all-absent constraints aggregate to nil")
}

func TestGroupReferencesKeepsDuplicates(t *testing.T) {
	groups := groupReferences([]ReferenceItem{
		{File: "B.dll", TargetFramework: "net45"},
		{File: " A.dll ", TargetFramework: "net45"},
		{File: "A.dll", TargetFramework: "net45"},
		{File: "Core.dll"},
		{File: "   ", TargetFramework: "net45"},
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "", groups[0].TargetFramework)
	assert.Equal(t, []string{"Core.dll"}, groups[0].References)
	assert.Equal(t, "net45", groups[1].TargetFramework)
	assert.Equal(t, []string{"A.dll", "A.dll", "B.dll"}, groups[1].References)
}

func TestFrameworkAssembliesSorted(t *testing.T) {
	fas := frameworkAssemblies([]FrameworkReferenceItem{
		{Assembly: " System.Xml ", TargetFramework: "NET45"},
		{Assembly: "System.Core"},
		{Assembly: ""},
		{Assembly: "  "},
	})
	require.Len(t, fas, 2)
	assert.Equal(t, "System.Core", fas[0].AssemblyName)
	assert.Equal(t, "System.Xml", fas[1].AssemblyName)
	assert.Equal(t, "net45", fas[1].TargetFramework)
}

package manifest

import (
	"sort"
	"strings"

	"github.com/pkgsmith/nuspecgen/pkg/nugetver"
	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
)

// groupDependencies partitions normalized dependencies by framework label,
// folds each identifier's constraints into one aggregated range, and returns
// groups in deterministic order: labels ordinal ascending with the empty
// (framework-less) label first, entries ordinal by identifier. The sentinel
// placeholder is dropped before aggregation. The per-identifier fold runs in
// declaration order so repeated generation is byte-stable.
func groupDependencies(deps []dependency) []nuspec.DependencyGroup {
	byFramework := make(map[string]map[string][]*nugetver.Range)
	for _, dep := range deps {
		if dep.id == SentinelID {
			continue
		}
		byID, ok := byFramework[dep.framework]
		if !ok {
			byID = make(map[string][]*nugetver.Range)
			byFramework[dep.framework] = byID
		}
		byID[dep.id] = append(byID[dep.id], dep.rng)
	}

	frameworks := make([]string, 0, len(byFramework))
	for fw := range byFramework {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)

	groups := make([]nuspec.DependencyGroup, 0, len(frameworks))
	for _, fw := range frameworks {
		byID := byFramework[fw]
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		group := nuspec.DependencyGroup{TargetFramework: fw}
		for _, id := range ids {
			group.Dependencies = append(group.Dependencies, nuspec.Dependency{
				ID:    id,
				Range: nugetver.Aggregate(byID[id]),
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// groupReferences partitions reference file names by framework label. Names
// sort ordinally within each group and duplicates are retained, unlike
// dependencies which collapse per identifier.
func groupReferences(items []ReferenceItem) []nuspec.ReferenceGroup {
	byFramework := make(map[string][]string)
	for _, item := range items {
		file := strings.TrimSpace(item.File)
		if file == "" {
			continue
		}
		fw := ShortFrameworkName(item.TargetFramework)
		byFramework[fw] = append(byFramework[fw], file)
	}

	frameworks := make([]string, 0, len(byFramework))
	for fw := range byFramework {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)

	groups := make([]nuspec.ReferenceGroup, 0, len(frameworks))
	for _, fw := range frameworks {
		files := byFramework[fw]
		sort.Strings(files)
		groups = append(groups, nuspec.ReferenceGroup{TargetFramework: fw, References: files})
	}
	return groups
}

// frameworkAssemblies sorts framework references ordinally by assembly name.
// Each entry keeps its single framework label; there is no cross-framework
// grouping for this section.
func frameworkAssemblies(items []FrameworkReferenceItem) []nuspec.FrameworkAssembly {
	out := make([]nuspec.FrameworkAssembly, 0, len(items))
	for _, item := range items {
		assembly := strings.TrimSpace(item.Assembly)
		if assembly == "" {
			continue
		}
		out = append(out, nuspec.FrameworkAssembly{
			AssemblyName:    assembly,
			TargetFramework: ShortFrameworkName(item.TargetFramework),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AssemblyName < out[j].AssemblyName
	})
	return out
}

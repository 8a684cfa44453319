// Package manifest turns declared pack inputs into a merged nuspec document:
// it normalizes raw item declarations, aggregates dependency version ranges,
// overlays the result onto an optional template manifest, and writes the
// output only when the content actually changed.
package manifest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pkgsmith/nuspecgen/pkg/nugetver"
	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
)

// SentinelID marks a placeholder dependency that exists only to satisfy the
// build's item plumbing. It never reaches the output manifest.
const SentinelID = "_._"

// DependencyItem is one raw dependency declaration from the pack task.
type DependencyItem struct {
	ID              string `yaml:"id" json:"id" toml:"id"`
	Version         string `yaml:"version,omitempty" json:"version,omitempty" toml:"version,omitempty"`
	TargetFramework string `yaml:"targetFramework,omitempty" json:"targetFramework,omitempty" toml:"targetFramework,omitempty"`
}

// ReferenceItem is one assembly reference declaration.
type ReferenceItem struct {
	File            string `yaml:"file" json:"file" toml:"file"`
	TargetFramework string `yaml:"targetFramework,omitempty" json:"targetFramework,omitempty" toml:"targetFramework,omitempty"`
}

// FrameworkReferenceItem is one GAC framework assembly declaration.
type FrameworkReferenceItem struct {
	Assembly        string `yaml:"assembly" json:"assembly" toml:"assembly"`
	TargetFramework string `yaml:"targetFramework,omitempty" json:"targetFramework,omitempty" toml:"targetFramework,omitempty"`
}

// FileItem maps source files into the package. Source may be a doublestar
// glob; Exclude is passed through to the manifest untouched.
type FileItem struct {
	Source  string `yaml:"src" json:"src" toml:"src"`
	Target  string `yaml:"target,omitempty" json:"target,omitempty" toml:"target,omitempty"`
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty" toml:"exclude,omitempty"`
}

// Inputs carries the four item collections. Any of them may be empty.
type Inputs struct {
	Dependencies        []DependencyItem         `yaml:"dependencies,omitempty" json:"dependencies,omitempty" toml:"dependencies,omitempty"`
	References          []ReferenceItem          `yaml:"references,omitempty" json:"references,omitempty" toml:"references,omitempty"`
	FrameworkReferences []FrameworkReferenceItem `yaml:"frameworkReferences,omitempty" json:"frameworkReferences,omitempty" toml:"frameworkReferences,omitempty"`
	Files               []FileItem               `yaml:"files,omitempty" json:"files,omitempty" toml:"files,omitempty"`
}

// dependency is a normalized dependency declaration with its constraint
// parsed. Range is nil when the declaration carried no version.
type dependency struct {
	id        string
	framework string
	rng       *nugetver.Range
}

// ShortFrameworkName canonicalizes a target framework label for grouping and
// ordering. Labels are opaque beyond trimming and case folding; an empty
// label means "any framework" and sorts before all others.
func ShortFrameworkName(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func normalizeDependencies(items []DependencyItem) ([]dependency, error) {
	var out []dependency
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		dep := dependency{id: id, framework: ShortFrameworkName(item.TargetFramework)}
		if raw := strings.TrimSpace(item.Version); raw != "" {
			r, err := nugetver.ParseRange(raw)
			if err != nil {
				return nil, fmt.Errorf("dependency %s: %w", id, err)
			}
			dep.rng = r
		}
		out = append(out, dep)
	}
	return out, nil
}

// normalizeFiles resolves file items into manifest entries, expanding glob
// sources against baseDir. Entries are sorted by target case-insensitively.
func normalizeFiles(items []FileItem, baseDir string) ([]nuspec.File, error) {
	var out []nuspec.File
	for _, item := range items {
		src := strings.TrimSpace(item.Source)
		if src == "" {
			continue
		}
		entry := nuspec.File{
			Source:  src,
			Target:  strings.TrimSpace(item.Target),
			Exclude: strings.TrimSpace(item.Exclude),
		}
		if baseDir != "" && strings.ContainsAny(src, "*?[{") {
			matches, err := doublestar.FilepathGlob(filepath.Join(baseDir, src))
			if err != nil {
				return nil, fmt.Errorf("file pattern %s: %w", src, err)
			}
			for _, match := range matches {
				rel, err := filepath.Rel(baseDir, match)
				if err != nil {
					rel = match
				}
				out = append(out, nuspec.File{
					Source:  filepath.ToSlash(rel),
					Target:  entry.Target,
					Exclude: entry.Exclude,
				})
			}
			continue
		}
		out = append(out, entry)
	}

	caseFold := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := caseFold.CompareString(out[i].Target, out[j].Target); cmp != 0 {
			return cmp < 0
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

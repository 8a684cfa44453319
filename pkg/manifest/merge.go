package manifest

import (
	"strings"

	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
)

// Scalars holds the metadata values supplied by the pack task. Empty fields
// leave the corresponding template values untouched.
type Scalars struct {
	ID               string `yaml:"id,omitempty" json:"id,omitempty" toml:"id,omitempty"`
	Version          string `yaml:"version,omitempty" json:"version,omitempty" toml:"version,omitempty"`
	Title            string `yaml:"title,omitempty" json:"title,omitempty" toml:"title,omitempty"`
	Authors          string `yaml:"authors,omitempty" json:"authors,omitempty" toml:"authors,omitempty"`
	Owners           string `yaml:"owners,omitempty" json:"owners,omitempty" toml:"owners,omitempty"`
	Description      string `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Summary          string `yaml:"summary,omitempty" json:"summary,omitempty" toml:"summary,omitempty"`
	ReleaseNotes     string `yaml:"releaseNotes,omitempty" json:"releaseNotes,omitempty" toml:"releaseNotes,omitempty"`
	Copyright        string `yaml:"copyright,omitempty" json:"copyright,omitempty" toml:"copyright,omitempty"`
	Language         string `yaml:"language,omitempty" json:"language,omitempty" toml:"language,omitempty"`
	Tags             string `yaml:"tags,omitempty" json:"tags,omitempty" toml:"tags,omitempty"`
	LicenseURL       string `yaml:"licenseUrl,omitempty" json:"licenseUrl,omitempty" toml:"licenseUrl,omitempty"`
	IconURL          string `yaml:"iconUrl,omitempty" json:"iconUrl,omitempty" toml:"iconUrl,omitempty"`
	ProjectURL       string `yaml:"projectUrl,omitempty" json:"projectUrl,omitempty" toml:"projectUrl,omitempty"`
	MinClientVersion string `yaml:"minClientVersion,omitempty" json:"minClientVersion,omitempty" toml:"minClientVersion,omitempty"`

	RequireLicenseAcceptance bool `yaml:"requireLicenseAcceptance,omitempty" json:"requireLicenseAcceptance,omitempty" toml:"requireLicenseAcceptance,omitempty"`
	DevelopmentDependency    bool `yaml:"developmentDependency,omitempty" json:"developmentDependency,omitempty" toml:"developmentDependency,omitempty"`

	Repository *nuspec.Repository `yaml:"repository,omitempty" json:"repository,omitempty" toml:"repository,omitempty"`
}

// mergeScalars overlays non-empty scalar values onto the metadata with
// last-writer-wins semantics. The field table keeps the rule explicit and
// reflection-free. The two boolean flags OR with the existing values so a
// template's "true" is never downgraded.
func mergeScalars(dst *nuspec.Metadata, src Scalars) {
	fields := []struct {
		value  string
		assign func(string)
	}{
		{src.ID, func(v string) { dst.ID = v }},
		{src.Version, func(v string) { dst.Version = v }},
		{src.Title, func(v string) { dst.Title = v }},
		{src.Authors, func(v string) { dst.Authors = v }},
		{src.Owners, func(v string) { dst.Owners = v }},
		{src.Description, func(v string) { dst.Description = v }},
		{src.Summary, func(v string) { dst.Summary = v }},
		{src.ReleaseNotes, func(v string) { dst.ReleaseNotes = v }},
		{src.Copyright, func(v string) { dst.Copyright = v }},
		{src.Language, func(v string) { dst.Language = v }},
		{src.Tags, func(v string) { dst.Tags = v }},
		{src.LicenseURL, func(v string) { dst.LicenseURL = v }},
		{src.IconURL, func(v string) { dst.IconURL = v }},
		{src.ProjectURL, func(v string) { dst.ProjectURL = v }},
		{src.MinClientVersion, func(v string) { dst.MinClientVersion = v }},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) != "" {
			f.assign(f.value)
		}
	}

	dst.RequireLicenseAcceptance = dst.RequireLicenseAcceptance || src.RequireLicenseAcceptance
	dst.DevelopmentDependency = dst.DevelopmentDependency || src.DevelopmentDependency

	if src.Repository != nil {
		mergeRepository(dst, *src.Repository)
	}
}

func mergeRepository(dst *nuspec.Metadata, src nuspec.Repository) {
	if dst.Repository == nil {
		dst.Repository = &nuspec.Repository{}
	}
	fields := []struct {
		value  string
		assign func(string)
	}{
		{src.Type, func(v string) { dst.Repository.Type = v }},
		{src.URL, func(v string) { dst.Repository.URL = v }},
		{src.Branch, func(v string) { dst.Repository.Branch = v }},
		{src.Commit, func(v string) { dst.Repository.Commit = v }},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) != "" {
			f.assign(f.value)
		}
	}
}

// mergeCollections appends the generated sets after any template-provided
// entries. No dedup happens across that boundary: a template net45 group and
// a generated net45 group stay two separate groups. Downstream consumers of
// the document expect that shape, so it is preserved rather than fixed.
func mergeCollections(m *nuspec.Manifest, deps []nuspec.DependencyGroup, refs []nuspec.ReferenceGroup, fas []nuspec.FrameworkAssembly, files []nuspec.File) {
	m.Metadata.DependencyGroups = append(m.Metadata.DependencyGroups, deps...)
	m.Metadata.ReferenceGroups = append(m.Metadata.ReferenceGroups, refs...)
	m.Metadata.FrameworkAssemblies = append(m.Metadata.FrameworkAssemblies, fas...)
	m.Files = append(m.Files, files...)
}

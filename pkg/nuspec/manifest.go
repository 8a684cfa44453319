// Package nuspec models NuGet package manifest (.nuspec) documents and reads
// and writes them in the fixed packaging schema. The model is deliberately
// permissive: a template loaded from disk may be partially populated, and a
// dependency without a version constraint carries a nil range meaning "any
// version".
package nuspec

import "github.com/pkgsmith/nuspecgen/pkg/nugetver"

// Namespace is the nuspec XML namespace used for all written documents.
const Namespace = "http://schemas.microsoft.com/packaging/2010/07/nuspec.xsd"

// Dependency is one package dependency entry inside a dependency group.
type Dependency struct {
	ID    string
	Range *nugetver.Range // nil means unconstrained
}

// DependencyGroup holds the dependencies for one target framework. An empty
// TargetFramework means the group applies to any framework.
type DependencyGroup struct {
	TargetFramework string
	Dependencies    []Dependency
}

// ReferenceGroup holds assembly reference file names for one target framework.
type ReferenceGroup struct {
	TargetFramework string
	References      []string
}

// FrameworkAssembly is a GAC assembly reference bound to a single framework.
type FrameworkAssembly struct {
	AssemblyName    string
	TargetFramework string
}

// File maps a source path (possibly a glob) into the package layout.
type File struct {
	Source  string
	Target  string
	Exclude string
}

// Repository describes the source repository the package was built from.
type Repository struct {
	Type   string
	URL    string
	Branch string
	Commit string
}

// Metadata is the mutable metadata section of a manifest. Scalar fields are
// overwritten by the merge step; the collection fields accumulate.
type Metadata struct {
	ID               string
	Version          string
	Title            string
	Authors          string
	Owners           string
	Description      string
	Summary          string
	ReleaseNotes     string
	Copyright        string
	Language         string
	Tags             string
	LicenseURL       string
	IconURL          string
	ProjectURL       string
	MinClientVersion string

	RequireLicenseAcceptance bool
	DevelopmentDependency    bool

	Repository *Repository

	DependencyGroups    []DependencyGroup
	ReferenceGroups     []ReferenceGroup
	FrameworkAssemblies []FrameworkAssembly
}

// Manifest is the document root: package metadata plus the files section.
type Manifest struct {
	Metadata Metadata
	Files    []File
}

// New returns an empty manifest ready for merging.
func New() *Manifest {
	return &Manifest{}
}

package nuspec

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/pkgsmith/nuspecgen/pkg/nugetver"
)

// Load reads and parses a manifest document from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- template path is caller-supplied by design
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse parses manifest XML into the in-memory model. Unknown elements are
// ignored; missing sections leave their collections empty.
func Parse(data []byte) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("manifest is not well-formed XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "package" {
		return nil, fmt.Errorf("manifest root element must be <package>")
	}

	m := New()

	if meta := root.FindElement("metadata"); meta != nil {
		if err := parseMetadata(meta, &m.Metadata); err != nil {
			return nil, err
		}
	}

	if files := root.FindElement("files"); files != nil {
		for _, f := range files.SelectElements("file") {
			m.Files = append(m.Files, File{
				Source:  f.SelectAttrValue("src", ""),
				Target:  f.SelectAttrValue("target", ""),
				Exclude: f.SelectAttrValue("exclude", ""),
			})
		}
	}

	return m, nil
}

func parseMetadata(meta *etree.Element, md *Metadata) error {
	md.ID = childText(meta, "id")
	md.Version = childText(meta, "version")
	md.Title = childText(meta, "title")
	md.Authors = childText(meta, "authors")
	md.Owners = childText(meta, "owners")
	md.Description = childText(meta, "description")
	md.Summary = childText(meta, "summary")
	md.ReleaseNotes = childText(meta, "releaseNotes")
	md.Copyright = childText(meta, "copyright")
	md.Language = childText(meta, "language")
	md.Tags = childText(meta, "tags")
	md.LicenseURL = childText(meta, "licenseUrl")
	md.IconURL = childText(meta, "iconUrl")
	md.ProjectURL = childText(meta, "projectUrl")
	md.MinClientVersion = meta.SelectAttrValue("minClientVersion", "")
	md.RequireLicenseAcceptance = parseBool(childText(meta, "requireLicenseAcceptance"))
	md.DevelopmentDependency = parseBool(childText(meta, "developmentDependency"))

	if repo := meta.FindElement("repository"); repo != nil {
		md.Repository = &Repository{
			Type:   repo.SelectAttrValue("type", ""),
			URL:    repo.SelectAttrValue("url", ""),
			Branch: repo.SelectAttrValue("branch", ""),
			Commit: repo.SelectAttrValue("commit", ""),
		}
	}

	if deps := meta.FindElement("dependencies"); deps != nil {
		groups := deps.SelectElements("group")
		if len(groups) == 0 {
			// Flat form: dependencies directly under <dependencies>.
			group, err := parseDependencyGroup(deps, "")
			if err != nil {
				return err
			}
			if len(group.Dependencies) > 0 {
				md.DependencyGroups = append(md.DependencyGroups, group)
			}
		}
		for _, g := range groups {
			group, err := parseDependencyGroup(g, g.SelectAttrValue("targetFramework", ""))
			if err != nil {
				return err
			}
			md.DependencyGroups = append(md.DependencyGroups, group)
		}
	}

	if refs := meta.FindElement("references"); refs != nil {
		groups := refs.SelectElements("group")
		if len(groups) == 0 {
			if group := parseReferenceGroup(refs, ""); len(group.References) > 0 {
				md.ReferenceGroups = append(md.ReferenceGroups, group)
			}
		}
		for _, g := range groups {
			md.ReferenceGroups = append(md.ReferenceGroups, parseReferenceGroup(g, g.SelectAttrValue("targetFramework", "")))
		}
	}

	if fas := meta.FindElement("frameworkAssemblies"); fas != nil {
		for _, fa := range fas.SelectElements("frameworkAssembly") {
			md.FrameworkAssemblies = append(md.FrameworkAssemblies, FrameworkAssembly{
				AssemblyName:    fa.SelectAttrValue("assemblyName", ""),
				TargetFramework: fa.SelectAttrValue("targetFramework", ""),
			})
		}
	}

	return nil
}

func parseDependencyGroup(parent *etree.Element, framework string) (DependencyGroup, error) {
	group := DependencyGroup{TargetFramework: framework}
	for _, d := range parent.SelectElements("dependency") {
		dep := Dependency{ID: d.SelectAttrValue("id", "")}
		if raw := strings.TrimSpace(d.SelectAttrValue("version", "")); raw != "" {
			r, err := nugetver.ParseRange(raw)
			if err != nil {
				return group, fmt.Errorf("dependency %s: %w", dep.ID, err)
			}
			dep.Range = r
		}
		group.Dependencies = append(group.Dependencies, dep)
	}
	return group, nil
}

func parseReferenceGroup(parent *etree.Element, framework string) ReferenceGroup {
	group := ReferenceGroup{TargetFramework: framework}
	for _, r := range parent.SelectElements("reference") {
		group.References = append(group.References, r.SelectAttrValue("file", ""))
	}
	return group
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.FindElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

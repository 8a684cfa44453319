package nuspec

import (
	"fmt"
	"os"
	"strconv"

	"github.com/beevik/etree"
)

// Bytes serializes the manifest to its canonical encoding: fixed namespace,
// two-space indent, stable element order. Byte equality of two serializations
// implies semantic equality, which the change-detection writer relies on.
func (m *Manifest) Bytes() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", Namespace)

	meta := pkg.CreateElement("metadata")
	if m.Metadata.MinClientVersion != "" {
		meta.CreateAttr("minClientVersion", m.Metadata.MinClientVersion)
	}

	setChild(meta, "id", m.Metadata.ID)
	setChild(meta, "version", m.Metadata.Version)
	setChild(meta, "title", m.Metadata.Title)
	setChild(meta, "authors", m.Metadata.Authors)
	setChild(meta, "owners", m.Metadata.Owners)
	setChild(meta, "licenseUrl", m.Metadata.LicenseURL)
	setChild(meta, "projectUrl", m.Metadata.ProjectURL)
	setChild(meta, "iconUrl", m.Metadata.IconURL)
	setChild(meta, "requireLicenseAcceptance", strconv.FormatBool(m.Metadata.RequireLicenseAcceptance))
	if m.Metadata.DevelopmentDependency {
		setChild(meta, "developmentDependency", "true")
	}
	setChild(meta, "description", m.Metadata.Description)
	setChild(meta, "summary", m.Metadata.Summary)
	setChild(meta, "releaseNotes", m.Metadata.ReleaseNotes)
	setChild(meta, "copyright", m.Metadata.Copyright)
	setChild(meta, "language", m.Metadata.Language)
	setChild(meta, "tags", m.Metadata.Tags)

	if r := m.Metadata.Repository; r != nil && (r.URL != "" || r.Commit != "") {
		repo := meta.CreateElement("repository")
		setAttr(repo, "type", r.Type)
		setAttr(repo, "url", r.URL)
		setAttr(repo, "branch", r.Branch)
		setAttr(repo, "commit", r.Commit)
	}

	if len(m.Metadata.DependencyGroups) > 0 {
		deps := meta.CreateElement("dependencies")
		for _, g := range m.Metadata.DependencyGroups {
			group := deps.CreateElement("group")
			setAttr(group, "targetFramework", g.TargetFramework)
			for _, d := range g.Dependencies {
				dep := group.CreateElement("dependency")
				dep.CreateAttr("id", d.ID)
				setAttr(dep, "version", d.Range.String())
			}
		}
	}

	if len(m.Metadata.ReferenceGroups) > 0 {
		refs := meta.CreateElement("references")
		for _, g := range m.Metadata.ReferenceGroups {
			group := refs.CreateElement("group")
			setAttr(group, "targetFramework", g.TargetFramework)
			for _, file := range g.References {
				ref := group.CreateElement("reference")
				ref.CreateAttr("file", file)
			}
		}
	}

	if len(m.Metadata.FrameworkAssemblies) > 0 {
		fas := meta.CreateElement("frameworkAssemblies")
		for _, fa := range m.Metadata.FrameworkAssemblies {
			el := fas.CreateElement("frameworkAssembly")
			el.CreateAttr("assemblyName", fa.AssemblyName)
			setAttr(el, "targetFramework", fa.TargetFramework)
		}
	}

	if len(m.Files) > 0 {
		files := pkg.CreateElement("files")
		for _, f := range m.Files {
			el := files.CreateElement("file")
			el.CreateAttr("src", f.Source)
			setAttr(el, "target", f.Target)
			setAttr(el, "exclude", f.Exclude)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize manifest: %w", err)
	}
	return out, nil
}

// Save serializes the manifest and writes it to path unconditionally. Callers
// wanting write-avoidance on unchanged content use the generator's writer.
func (m *Manifest) Save(path string) error {
	data, err := m.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// setChild creates a child element with text content, skipping empty values
// except where the caller passes an explicit boolean string.
func setChild(parent *etree.Element, tag, value string) {
	if value == "" {
		return
	}
	parent.CreateElement(tag).SetText(value)
}

func setAttr(el *etree.Element, key, value string) {
	if value == "" {
		return
	}
	el.CreateAttr(key, value)
}

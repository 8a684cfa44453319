// Package task loads declarative pack-task files, validates them against the
// embedded schema, renders templated values, and turns them into generator
// options. A task file is the Go-side equivalent of the build-task property
// bag: scalars, four item collections, and the paths tying a single run to a
// single output manifest.
package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pkgsmith/nuspecgen/internal/gitctx"
	"github.com/pkgsmith/nuspecgen/internal/schema"
	"github.com/pkgsmith/nuspecgen/pkg/manifest"
	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
)

// SchemaName is the embedded schema task files are validated against.
const SchemaName = "nuspecgen-task-v1.0.0"

// Task is one pack-task document.
type Task struct {
	Output            string                 `yaml:"output" json:"output" toml:"output"`
	Template          string                 `yaml:"template,omitempty" json:"template,omitempty" toml:"template,omitempty"`
	BaseDir           string                 `yaml:"baseDir,omitempty" json:"baseDir,omitempty" toml:"baseDir,omitempty"`
	RepositoryFromGit bool                   `yaml:"repositoryFromGit,omitempty" json:"repositoryFromGit,omitempty" toml:"repositoryFromGit,omitempty"`
	Properties        map[string]interface{} `yaml:"properties,omitempty" json:"properties,omitempty" toml:"properties,omitempty"`

	manifest.Scalars `yaml:",inline"`
	manifest.Inputs  `yaml:",inline"`

	// dir is where the task file lives; relative paths resolve against it.
	dir string
}

// Load reads, validates, and renders a task file. The format follows the
// file extension: .yaml/.yml, .toml, or .json.
func Load(path string) (*Task, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- task path is caller-supplied by design
	if err != nil {
		return nil, fmt.Errorf("read task file %s: %w", path, err)
	}

	unmarshal, err := unmarshalerFor(path)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse task file %s: %w", path, err)
	}
	res, err := schema.Validate(normalizeForSchema(raw), SchemaName)
	if err != nil {
		return nil, fmt.Errorf("validate task file %s: %w", path, err)
	}
	if !res.Valid {
		return nil, fmt.Errorf("task file %s is invalid: %s", path, formatErrors(res.Errors))
	}

	t := &Task{}
	if err := unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse task file %s: %w", path, err)
	}
	t.dir = filepath.Dir(path)

	if err := t.render(); err != nil {
		return nil, fmt.Errorf("render task file %s: %w", path, err)
	}
	return t, nil
}

func unmarshalerFor(path string) (func([]byte, interface{}) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	case ".toml":
		return toml.Unmarshal, nil
	case ".json":
		return json.Unmarshal, nil
	default:
		return nil, fmt.Errorf("unsupported task file format %q (want .yaml, .toml, or .json)", filepath.Ext(path))
	}
}

// render resolves handlebars placeholders in scalar values against the
// task's properties map plus the id and version builtins.
func (t *Task) render() error {
	data := make(map[string]interface{}, len(t.Properties)+2)
	for k, v := range t.Properties {
		data[k] = v
	}
	if t.ID != "" {
		data["id"] = t.ID
	}
	if t.Version != "" {
		data["version"] = t.Version
	}

	fields := []*string{
		&t.Scalars.Version, &t.Title, &t.Authors, &t.Owners,
		&t.Description, &t.Summary, &t.ReleaseNotes, &t.Copyright,
		&t.Tags, &t.LicenseURL, &t.IconURL, &t.ProjectURL,
		&t.Output,
	}
	for _, f := range fields {
		if !strings.Contains(*f, "{{") {
			continue
		}
		out, err := raymond.Render(*f, data)
		if err != nil {
			return err
		}
		*f = out
	}
	return nil
}

// Options resolves the task into generator options. Relative paths resolve
// against the task file's directory. When RepositoryFromGit is set, the
// local repository's coordinates fill any repository fields the task left
// empty; explicit task values win.
func (t *Task) Options() (manifest.Options, error) {
	opts := manifest.Options{
		TemplatePath: t.resolve(t.Template),
		OutputPath:   t.resolve(t.Output),
		BaseDir:      t.resolve(t.BaseDir),
		Scalars:      t.Scalars,
		Inputs:       t.Inputs,
	}
	if opts.BaseDir == "" {
		opts.BaseDir = t.dir
	}

	if t.RepositoryFromGit {
		info, err := gitctx.Collect(t.dir)
		if err != nil {
			return opts, err
		}
		if info != nil {
			repo := opts.Scalars.Repository
			if repo == nil {
				repo = &nuspec.Repository{}
				opts.Scalars.Repository = repo
			}
			if repo.Type == "" {
				repo.Type = "git"
			}
			if repo.URL == "" {
				repo.URL = info.URL
			}
			if repo.Branch == "" {
				repo.Branch = info.Branch
			}
			if repo.Commit == "" {
				repo.Commit = info.Commit
			}
		}
	}

	return opts, nil
}

func (t *Task) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(t.dir, p)
}

// normalizeForSchema converts YAML's map[interface{}]interface{} shapes into
// the string-keyed maps gojsonschema understands. yaml.v3 already produces
// string keys for mappings, but nested documents decoded into interface{}
// can still surface interface keys through aliases.
func normalizeForSchema(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeForSchema(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalizeForSchema(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeForSchema(item)
		}
		return out
	default:
		return v
	}
}

func formatErrors(errs []schema.ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return strings.Join(parts, "; ")
}

package manifest

import (
	"fmt"

	"github.com/pkgsmith/nuspecgen/pkg/logger"
	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
)

// Options drives one generation pass: one set of inputs to one output file.
type Options struct {
	// TemplatePath optionally points at a hand-authored manifest whose
	// values seed the output. Empty means start from an empty manifest.
	TemplatePath string
	// OutputPath is where the merged manifest is written.
	OutputPath string
	// BaseDir anchors file glob expansion. Empty disables expansion.
	BaseDir string

	Scalars Scalars
	Inputs  Inputs
}

// Result reports what one generation pass did.
type Result struct {
	OutputPath string
	Written    bool
}

// Generate runs the full pipeline: load template, normalize inputs, group and
// aggregate, merge, and write with change detection. The in-memory manifest
// is fully built before anything touches the output path, so a failure never
// leaves a partial file behind.
func Generate(opts Options) (Result, error) {
	res := Result{OutputPath: opts.OutputPath}
	if opts.OutputPath == "" {
		return res, fmt.Errorf("output path is required")
	}

	m := nuspec.New()
	if opts.TemplatePath != "" {
		loaded, err := nuspec.Load(opts.TemplatePath)
		if err != nil {
			return res, err
		}
		m = loaded
		logger.Debug("template manifest loaded", logger.String("path", opts.TemplatePath))
	}

	deps, err := normalizeDependencies(opts.Inputs.Dependencies)
	if err != nil {
		return res, err
	}
	files, err := normalizeFiles(opts.Inputs.Files, opts.BaseDir)
	if err != nil {
		return res, err
	}

	mergeScalars(&m.Metadata, opts.Scalars)
	mergeCollections(m,
		groupDependencies(deps),
		groupReferences(opts.Inputs.References),
		frameworkAssemblies(opts.Inputs.FrameworkReferences),
		files,
	)

	written, err := writeIfChanged(m, opts.OutputPath)
	if err != nil {
		return res, err
	}
	res.Written = written
	return res, nil
}

// Run executes Generate and reduces the outcome to a success flag, logging
// any failure in full. This is the build-task entry point: callers get a
// boolean, not a panic, and re-invocation is the only retry path.
func Run(opts Options) bool {
	if _, err := Generate(opts); err != nil {
		logger.Error("manifest generation failed", logger.Err(err), logger.String("output", opts.OutputPath))
		return false
	}
	return true
}

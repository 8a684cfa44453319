/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pkgsmith/nuspecgen/internal/task"
	"github.com/pkgsmith/nuspecgen/pkg/config"
	"github.com/pkgsmith/nuspecgen/pkg/logger"
	"github.com/pkgsmith/nuspecgen/pkg/manifest"
	"github.com/pkgsmith/nuspecgen/pkg/safeio"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [task-file...]",
	Short: "Generate nuspec manifests from pack task files",
	Long: `Generate merges each pack task file with its optional template manifest
and writes the resulting .nuspec. Output files are only rewritten when their
content actually changes, so build timestamps stay stable across no-op runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int("workers", 0, "Concurrent task files in batch mode (0 = from config)")
	generateCmd.Flags().Bool("repository-from-git", false, "Stamp repository metadata from the local git repo")
	generateCmd.Flags().String("output", "", "Override the task's output path (single task only)")
	generateCmd.Flags().String("template", "", "Override the task's template manifest path (single task only)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 1 {
		workers = cfg.Generate.Workers
	}
	repoFromGit, _ := cmd.Flags().GetBool("repository-from-git")
	repoFromGit = repoFromGit || cfg.Generate.RepositoryFromGit

	outputOverride, _ := cmd.Flags().GetString("output")
	templateOverride, _ := cmd.Flags().GetString("template")
	if (outputOverride != "" || templateOverride != "") && len(args) != 1 {
		return fmt.Errorf("--output and --template require exactly one task file")
	}
	if outputOverride != "" {
		if outputOverride, err = safeio.CleanUserPath(outputOverride); err != nil {
			return fmt.Errorf("invalid --output: %w", err)
		}
	}
	if templateOverride != "" {
		if templateOverride, err = safeio.CleanUserPath(templateOverride); err != nil {
			return fmt.Errorf("invalid --template: %w", err)
		}
	}

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)

	for _, taskPath := range args {
		taskPath := taskPath
		g.Go(func() error {
			opts, err := loadTaskOptions(taskPath, repoFromGit, outputOverride, templateOverride)
			if err != nil {
				logger.Error("task load failed", logger.Err(err), logger.String("task", taskPath))
				failed.Add(1)
				return nil
			}
			if !manifest.Run(opts) {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d tasks failed", n, len(args))
	}
	return nil
}

func loadTaskOptions(path string, repoFromGit bool, outputOverride, templateOverride string) (manifest.Options, error) {
	t, err := task.Load(path)
	if err != nil {
		return manifest.Options{}, err
	}
	if repoFromGit {
		t.RepositoryFromGit = true
	}

	opts, err := t.Options()
	if err != nil {
		return opts, err
	}
	if outputOverride != "" {
		opts.OutputPath = outputOverride
	}
	if templateOverride != "" {
		opts.TemplatePath = templateOverride
	}
	return opts, nil
}

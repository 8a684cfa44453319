/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgsmith/nuspecgen/pkg/nuspec"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [manifest]",
	Short: "Summarize an existing nuspec manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "Output the summary in JSON format")
}

// manifestSummary is the inspect command's output shape.
type manifestSummary struct {
	ID                  string   `json:"id"`
	Version             string   `json:"version"`
	Authors             string   `json:"authors,omitempty"`
	Description         string   `json:"description,omitempty"`
	RepositoryURL       string   `json:"repositoryUrl,omitempty"`
	DependencyGroups    []string `json:"dependencyGroups"`
	Dependencies        int      `json:"dependencies"`
	ReferenceGroups     int      `json:"referenceGroups"`
	FrameworkAssemblies int      `json:"frameworkAssemblies"`
	Files               int      `json:"files"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	m, err := nuspec.Load(args[0])
	if err != nil {
		return err
	}

	summary := manifestSummary{
		ID:                  m.Metadata.ID,
		Version:             m.Metadata.Version,
		Authors:             m.Metadata.Authors,
		Description:         m.Metadata.Description,
		DependencyGroups:    []string{},
		ReferenceGroups:     len(m.Metadata.ReferenceGroups),
		FrameworkAssemblies: len(m.Metadata.FrameworkAssemblies),
		Files:               len(m.Files),
	}
	if m.Metadata.Repository != nil {
		summary.RepositoryURL = m.Metadata.Repository.URL
	}
	for _, g := range m.Metadata.DependencyGroups {
		label := g.TargetFramework
		if label == "" {
			label = "(any)"
		}
		summary.DependencyGroups = append(summary.DependencyGroups, label)
		summary.Dependencies += len(g.Dependencies)
	}

	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", summary.ID, summary.Version)
	if summary.Authors != "" {
		fmt.Fprintf(out, "  authors:     %s\n", summary.Authors)
	}
	if summary.RepositoryURL != "" {
		fmt.Fprintf(out, "  repository:  %s\n", summary.RepositoryURL)
	}
	fmt.Fprintf(out, "  dependencies: %d across %d group(s)\n", summary.Dependencies, len(summary.DependencyGroups))
	for _, g := range m.Metadata.DependencyGroups {
		label := g.TargetFramework
		if label == "" {
			label = "(any)"
		}
		fmt.Fprintf(out, "    %s\n", label)
		for _, d := range g.Dependencies {
			if d.Range != nil {
				fmt.Fprintf(out, "      %s %s\n", d.ID, d.Range)
			} else {
				fmt.Fprintf(out, "      %s\n", d.ID)
			}
		}
	}
	fmt.Fprintf(out, "  references:   %d group(s)\n", summary.ReferenceGroups)
	fmt.Fprintf(out, "  framework assemblies: %d\n", summary.FrameworkAssemblies)
	fmt.Fprintf(out, "  files:        %d\n", summary.Files)
	return nil
}

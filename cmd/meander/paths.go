package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/meander/internal/cli"
	"github.com/aretw0/meander/pkg/report"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths <segment>",
	Short: "Rank the most probable journeys from a segment",
	Long: `Fits a transition model from the journey log and runs a beam search
from the given segment, ranking whole journeys by joint probability.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd, nil)
		if err != nil {
			return err
		}
		if err := fitFromFlag(cmd, deps); err != nil {
			return err
		}

		steps, _ := cmd.Flags().GetInt("steps")
		topK, _ := cmd.Flags().GetInt("top-k")
		if !cmd.Flags().Changed("steps") {
			steps = deps.Config.Model.Steps
		}
		if !cmd.Flags().Changed("top-k") {
			topK = deps.Config.Model.TopK
		}

		paths, err := deps.Engine.TopPaths(cmd.Context(), args[0], steps, topK)
		if err != nil {
			return err
		}

		cli.RenderMarkdown(report.Paths(args[0], paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)

	pathsCmd.Flags().String("journeys", "", "Journey log file (.csv, .jsonl)")
	pathsCmd.Flags().Int("steps", 3, "Path length in transitions")
	pathsCmd.Flags().Int("top-k", 5, "Number of paths to keep")
}

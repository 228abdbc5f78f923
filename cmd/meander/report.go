package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/meander/internal/cli"
	"github.com/aretw0/meander/pkg/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a model report",
	Long:  `Fits a transition model from the journey log and prints a markdown report: vocabulary size and the full transition table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd, nil)
		if err != nil {
			return err
		}
		if err := fitFromFlag(cmd, deps); err != nil {
			return err
		}

		segments, err := deps.Engine.Segments()
		if err != nil {
			return err
		}
		matrix, err := deps.Engine.Matrix()
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		cli.RenderMarkdown(report.Model(title, segments, matrix))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("journeys", "", "Journey log file (.csv, .jsonl)")
	reportCmd.Flags().String("title", "", "Report title")
}

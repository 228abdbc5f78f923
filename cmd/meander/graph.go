package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/meander/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the transition diagram",
	Long:  `Fits a transition model from the journey log and outputs a Mermaid diagram (graph TD) of the segment transitions.`,
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

		highlight, _ := cmd.Flags().GetString("highlight")
		minProb, _ := cmd.Flags().GetFloat64("min-prob")

		var overlay *graph.Overlay
		if highlight != "" || minProb > 0 {
			overlay = &graph.Overlay{Highlight: highlight, MinProbability: minProb}
		}

		fmt.Print(graph.GenerateMermaid(segments, matrix, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("journeys", "", "Journey log file (.csv, .jsonl)")
	graphCmd.Flags().String("highlight", "", "Segment to highlight")
	graphCmd.Flags().Float64("min-prob", 0, "Hide edges below this probability")
}

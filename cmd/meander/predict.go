package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict <segment>",
	Short: "Predict the next segment or a greedy journey",
	Long: `Fits a transition model from the journey log and predicts where a
customer in the given segment goes next. With --steps the prediction is
rolled forward greedily, printing the whole walk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd, nil)
		if err != nil {
			return err
		}
		if err := fitFromFlag(cmd, deps); err != nil {
			return err
		}

		segment := args[0]
		steps, _ := cmd.Flags().GetInt("steps")

		if steps <= 1 {
			next, err := deps.Engine.PredictNext(cmd.Context(), segment)
			if err != nil {
				return err
			}
			fmt.Println(next)
			return nil
		}

		path, err := deps.Engine.PredictPath(cmd.Context(), segment, steps)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(path, " -> "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().String("journeys", "", "Journey log file (.csv, .jsonl)")
	predictCmd.Flags().Int("steps", 1, "Number of transitions to walk")
}

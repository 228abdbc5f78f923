package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/meander/internal/adapters/journeylog"
	"github.com/aretw0/meander/pkg/segments"
)

// segmentCmd represents the segment command
var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Derive behavioral segments from a raw action log",
	Long: `Clusters customers by their action frequencies and assigns each one a
segment label. The resulting labels can be fed back into a journey log for
transition modeling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("actions")
		if path == "" {
			return fmt.Errorf("--actions is required")
		}
		clusters, _ := cmd.Flags().GetInt("clusters")

		events, err := journeylog.NewReader(path).ActionEvents(cmd.Context())
		if err != nil {
			return fmt.Errorf("error reading action log: %w", err)
		}

		mapper := segments.NewMapper(clusters)
		if err := mapper.Fit(events); err != nil {
			return fmt.Errorf("error clustering customers: %w", err)
		}

		assignments, err := mapper.Assignments()
		if err != nil {
			return err
		}
		for _, a := range assignments {
			fmt.Printf("%s,%s\n", a.CustomerID, a.Segment)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(segmentCmd)

	segmentCmd.Flags().String("actions", "", "Action log file (.csv, .jsonl)")
	segmentCmd.Flags().Int("clusters", 3, "Number of segments to derive")
}

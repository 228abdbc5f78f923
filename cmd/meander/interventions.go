package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/meander/internal/adapters/journeylog"
	"github.com/aretw0/meander/internal/cli"
	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/report"
)

// interventionsCmd represents the interventions command group
var interventionsCmd = &cobra.Command{
	Use:   "interventions",
	Short: "Work with the intervention catalog and outcomes",
}

var interventionsCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare intervention success rates",
	Long: `Loads an intervention catalog (YAML) and an outcome log, then prints
a comparison table sorted by success rate. With a Redis backend configured,
outcomes accumulate across runs and the log flag is optional.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd, nil)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			ivs, err := loadInterventionCatalog(path)
			if err != nil {
				return err
			}
			for _, iv := range ivs {
				if err := deps.Catalog.Add(ctx, iv); err != nil {
					return fmt.Errorf("error adding %q: %w", iv.ID, err)
				}
			}
		}

		if path, _ := cmd.Flags().GetString("results"); path != "" {
			results, err := journeylog.NewReader(path).InterventionResults(ctx)
			if err != nil {
				return fmt.Errorf("error reading outcome log: %w", err)
			}
			for _, res := range results {
				err := deps.Analyzer.RecordResult(ctx, res.InterventionID, res.CustomerID, res.Timestamp, res.Outcome)
				if err != nil {
					return fmt.Errorf("error recording outcome for %q: %w", res.InterventionID, err)
				}
			}
		}

		catalog, err := deps.Catalog.List(ctx)
		if err != nil {
			return err
		}
		ids := make([]string, len(catalog))
		for i, iv := range catalog {
			ids[i] = iv.ID
		}

		summaries, err := deps.Analyzer.Compare(ctx, ids)
		if err != nil {
			return err
		}

		cli.RenderMarkdown(report.Interventions(summaries))
		return nil
	},
}

func loadInterventionCatalog(path string) ([]domain.Intervention, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading intervention catalog: %w", err)
	}
	var ivs []domain.Intervention
	if err := yaml.Unmarshal(data, &ivs); err != nil {
		return nil, fmt.Errorf("error parsing intervention catalog: %w", err)
	}
	return ivs, nil
}

func init() {
	rootCmd.AddCommand(interventionsCmd)
	interventionsCmd.AddCommand(interventionsCompareCmd)

	interventionsCompareCmd.Flags().String("catalog", "", "Intervention catalog file (YAML list)")
	interventionsCompareCmd.Flags().String("results", "", "Outcome log (.csv, .jsonl)")
}

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

// hvaCmd represents the hva command group
var hvaCmd = &cobra.Command{
	Use:   "hva",
	Short: "Work with High Value Action catalogs and records",
}

var hvaTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank the most performed High Value Actions",
	Long: `Loads an HVA catalog (YAML) and an occurrence log, then prints the
most performed actions. With a Redis backend configured, records accumulate
across runs and the log flag is optional.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd, nil)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			defs, err := loadHVACatalog(path)
			if err != nil {
				return err
			}
			for _, def := range defs {
				if err := deps.Tracker.Define(ctx, def); err != nil {
					return fmt.Errorf("error defining %q: %w", def.ID, err)
				}
			}
		}

		if path, _ := cmd.Flags().GetString("records"); path != "" {
			records, err := journeylog.NewReader(path).HVARecords(ctx)
			if err != nil {
				return fmt.Errorf("error reading HVA log: %w", err)
			}
			for _, rec := range records {
				if err := deps.Tracker.Record(ctx, rec.CustomerID, rec.HVAID, rec.Timestamp, rec.Metadata); err != nil {
					return fmt.Errorf("error recording %q: %w", rec.HVAID, err)
				}
			}
		}

		n, _ := cmd.Flags().GetInt("n")
		top, err := deps.Tracker.Top(ctx, n)
		if err != nil {
			return err
		}

		cli.RenderMarkdown(report.TopHVAs(top))
		return nil
	},
}

func loadHVACatalog(path string) ([]domain.HVADefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading HVA catalog: %w", err)
	}
	var defs []domain.HVADefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("error parsing HVA catalog: %w", err)
	}
	return defs, nil
}

func init() {
	rootCmd.AddCommand(hvaCmd)
	hvaCmd.AddCommand(hvaTopCmd)

	hvaTopCmd.Flags().String("catalog", "", "HVA catalog file (YAML list of definitions)")
	hvaTopCmd.Flags().String("records", "", "HVA occurrence log (.csv, .jsonl)")
	hvaTopCmd.Flags().Int("n", 5, "Number of actions to show")
}

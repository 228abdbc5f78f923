package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/meander/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "meander",
	Short: "Meander models customer journeys and predicts where they go next",
	Long: `Meander fits a Markov transition model over customer journey logs and
predicts segment transitions, ranks likely paths, and tracks High Value
Actions and intervention outcomes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "meander.yaml", "Configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// buildDeps assembles the application wiring from the persistent flags.
func buildDeps(cmd *cobra.Command, metrics prometheus.Registerer) (*cli.Deps, error) {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	return cli.Build(cli.BuildOptions{
		ConfigPath: configPath,
		Debug:      debug,
		Metrics:    metrics,
	})
}

// fitFromFlag loads the --journeys log and fits the engine, exiting with a
// message when the flag is missing.
func fitFromFlag(cmd *cobra.Command, deps *cli.Deps) error {
	path, _ := cmd.Flags().GetString("journeys")
	if path == "" {
		return fmt.Errorf("--journeys is required")
	}
	n, err := cli.FitFromFile(cmd.Context(), deps, path)
	if err != nil {
		return err
	}
	deps.Logger.Debug("journey log loaded", "path", path, "observations", n)
	return nil
}

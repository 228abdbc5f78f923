package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/meander"
	httpadapter "github.com/aretw0/meander/internal/adapters/http"
	"github.com/aretw0/meander/internal/cli"
	"github.com/aretw0/meander/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the meander engine in server mode, exposing the model, HVA
tracker and intervention catalog as a JSON API. With --journeys the model
is fitted at startup; otherwise POST /fit installs the first model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd, prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("journeys"); path != "" {
			n, err := cli.FitFromFile(cmd.Context(), deps, path)
			if err != nil {
				return err
			}
			cli.PrintSystemMessage("Fitted model from %d observations", n)
		}

		addr := deps.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		handler := httpadapter.NewHandler(
			deps.Engine,
			deps.Tracker,
			deps.Catalog,
			deps.Analyzer,
			httpadapter.WithLogger(deps.Logger),
			httpadapter.WithDefaults(httpadapter.Defaults{
				Steps: deps.Config.Model.Steps,
				TopK:  deps.Config.Model.TopK,
			}),
		)

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		if cli.IsTTY() {
			tui.PrintBanner(meander.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Meander Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Println("Meander Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("journeys", "", "Journey log to fit at startup (.csv, .jsonl)")
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
}

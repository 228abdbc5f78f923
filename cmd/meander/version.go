package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/meander"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of meander",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("meander version %s\n", strings.TrimSpace(meander.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

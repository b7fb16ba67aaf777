package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "growthlab",
	Short: "Growth experimentation tracker",
	Long: `growthlab is a growth experimentation tracker for product teams.

Define a North Star metric, break it down into objectives and strategies,
score experiment ideas with ICE, and move them through a kanban workflow
from idea to finished learning.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

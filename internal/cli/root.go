// Package cli provides the command-line interface for the biopage tool.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/biopage/biopage/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "biopage",
	Short:   "Turn a saved link-in-bio page into a static personal site",
	Long:    `Biopage reads a saved link-in-bio profile page, extracts the embedded profile data, and generates a small static website from it.`,
	Version: "0.1.0",
	// Commands report failures themselves; keep cobra from repeating them.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

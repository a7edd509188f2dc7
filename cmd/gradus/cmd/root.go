package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version is stamped by build flags.
	Version = "0.1.0-dev"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "gradus",
	Short:   "A type checker for a gradually-typed, class-based language",
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a gradus.yaml config file")
}

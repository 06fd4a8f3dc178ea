package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// currentReleaseVersion is printed by the version subcommand.
const currentReleaseVersion = "v0.2.0"

// logger is the structured logger every subcommand writes ambient
// diagnostics through; the chip8 core itself never logs.
var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

// cfgPath is the optional path to a chippy.yaml configuration file,
// available to every subcommand.
var cfgPath string

// rootCmd is the base for all commands.
var rootCmd = &cobra.Command{
	Use:   "chippy [command]",
	Short: "chippy is a CHIP-8 interpreter",
	Long:  "chippy is a CHIP-8 interpreter",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a chippy.yaml config file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs chippy according to the user's command/subcommand/flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("chippy exited with an error", "err", err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chippy-vm/chippy/internal/config"
)

// versionCmd returns the callers installed chippy version along with the
// quirk and clock defaults that version ships with, since those are what
// actually changes ROM-visible behavior between releases.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Retrieve the currently installed chippy version",
	Long:  "Run `chippy version` to get your current chippy version and default quirk settings",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	def := config.Defaults()
	fmt.Println(currentReleaseVersion)
	fmt.Printf("default clock: %dHz\n", def.ClockHz)
	fmt.Printf("default quirks: shift_uses_vy=%t increment_i_on_store=%t\n",
		def.Quirks.ShiftUsesVY, def.Quirks.IncrementIOnStore)
}

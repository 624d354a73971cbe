package cmd

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shrinkfit",
	Long:  `All software has versions. This is shrinkfit's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("0.1.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bed2go",
	Long:  `All software has versions. This is bed2go's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("0.1.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

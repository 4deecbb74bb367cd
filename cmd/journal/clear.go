package journal

import (
	"github.com/markusressel/bed2go/cmd/global"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all journaled thermal safety trips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()

		if err := openJournal().DeleteSafetyTrips(); err != nil {
			return err
		}
		ui.Success("Journal cleared.")
		return nil
	},
}

func init() {
	Command.AddCommand(clearCmd)
}

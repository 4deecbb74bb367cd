package channel

import (
	"fmt"

	"github.com/markusressel/bed2go/cmd/global"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the current temperature of a channel in °C",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()
		global.LoadConfig()

		reader, err := getReader(channelId)
		if err != nil {
			return err
		}

		value, err := reader.ReadTemperature(0)
		if err != nil {
			return err
		}
		fmt.Printf("%.2f", value)
		return nil
	},
}

func init() {
	Command.AddCommand(readCmd)
}

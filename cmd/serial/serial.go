package serial

import (
	"github.com/markusressel/bed2go/internal/link"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "serial",
	Short:            "Host link related commands",
	Long:             ``,
	TraverseChildren: true,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List the serial ports available for the host link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := link.Ports()
		if err != nil {
			return err
		}
		if len(ports) <= 0 {
			ui.Warning("No serial ports found.")
			return nil
		}
		for _, port := range ports {
			ui.Printfln("%s", port)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(portsCmd)
}

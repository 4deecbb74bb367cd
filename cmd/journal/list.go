package journal

import (
	"bytes"
	"fmt"
	"time"

	"github.com/markusressel/bed2go/cmd/global"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all journaled thermal safety trips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()

		records, err := openJournal().LoadSafetyTrips()
		if err != nil {
			return err
		}
		if len(records) <= 0 {
			ui.Info("No thermal safety trips journaled.")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, record := range records {
			rows = append(rows, []string{
				fmt.Sprintf("%d", record.ID),
				record.At.Local().Format(time.DateTime),
				fmt.Sprintf("%d", record.Segment),
				fmt.Sprintf("%.2f", record.Temperature),
				fmt.Sprintf("%.2f", record.Ceiling),
			})
		}
		tab := table.Table{
			Headers: []string{"#", "Time", "Segment", "Temperature (°C)", "Ceiling (°C)"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Printfln(buf.String())
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}

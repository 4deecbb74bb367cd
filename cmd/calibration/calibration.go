package calibration

import (
	"bytes"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/bed2go/cmd/global"
	"github.com/markusressel/bed2go/internal/calibration"
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const graphSteps = 100

var Command = &cobra.Command{
	Use:              "calibration",
	Short:            "Calibration related commands",
	Long:             ``,
	TraverseChildren: true,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the thermistor calibration table and curve to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()

		tab, err := calibration.FromConfig(configuration.CurrentConfig.Calibration)
		if err != nil {
			return err
		}
		points := tab.Points()

		rows := make([][]string, 0, len(points))
		for _, point := range points {
			rows = append(rows, []string{fmt.Sprintf("%d", point.Raw), fmt.Sprintf("%.1f", point.Temp)})
		}
		t := table.Table{
			Headers: []string{"Raw", "Temperature (°C)"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := t.WriteTable(&buf, &table.Config{
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

		first := points[0].Raw
		last := points[len(points)-1].Raw
		values := make([]float64, 0, graphSteps+1)
		for i := 0; i <= graphSteps; i++ {
			raw := first + (last-first)*i/graphSteps
			values = append(values, tab.Temperature(raw))
		}

		caption := fmt.Sprintf("°C / Raw %d-%d", first, last)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}

package channel

import (
	"fmt"

	"github.com/markusressel/bed2go/internal/calibration"
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/hardware"
	"github.com/markusressel/bed2go/internal/sensors"
	"github.com/spf13/cobra"
)

var channelId int

var Command = &cobra.Command{
	Use:              "channel",
	Short:            "Channel related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().IntVarP(
		&channelId,
		"id", "i",
		0,
		"Channel ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

// getReader creates a reader for the single configured channel with the given id
func getReader(id int) (*sensors.Reader, error) {
	config := configuration.CurrentConfig

	table, err := calibration.FromConfig(config.Calibration)
	if err != nil {
		return nil, err
	}

	var availableIds []int
	for _, channelConfig := range config.Channels {
		availableIds = append(availableIds, channelConfig.ID)
		if channelConfig.ID != id {
			continue
		}
		input, err := hardware.NewAnalogInput(channelConfig.Sensor)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", id, err)
		}
		return sensors.NewReader(table, []hardware.AnalogInput{input}, sensors.Config{
			RawMax:      config.RawMax,
			HistorySize: 1,
		}), nil
	}

	return nil, fmt.Errorf("no channel with id found: %d, options: %v", id, availableIds)
}

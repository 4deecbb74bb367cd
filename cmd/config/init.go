package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	force      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a configuration file with the default values",
	Long: `Writes a configuration file with the default board layout of
16 segments in 4 sections, the thermistor calibration table and all default values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(outputPath); err == nil && !force {
			return fmt.Errorf("file %s already exists, use --force to overwrite it", outputPath)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := configuration.WriteConfigFile(outputPath, configuration.DefaultConfiguration()); err != nil {
			return err
		}
		ui.Success("Configuration written to %s", outputPath)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&outputPath, "output", "o", "bed2go.yaml", "Path of the configuration file to write")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	Command.AddCommand(initCmd)
}

package global

import (
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfig reads and validates the configuration file, exiting on any error
func LoadConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(configPath); err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
}

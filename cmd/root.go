package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/bed2go/cmd/calibration"
	"github.com/markusressel/bed2go/cmd/channel"
	"github.com/markusressel/bed2go/cmd/config"
	"github.com/markusressel/bed2go/cmd/global"
	"github.com/markusressel/bed2go/cmd/journal"
	"github.com/markusressel/bed2go/cmd/serial"
	"github.com/markusressel/bed2go/internal"
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bed2go",
	Short: "A daemon to control the segments of a heated bed.",
	Long: `bed2go is a daemon that controls the heating segments
of a segmented 3D printer bed based on thermistor readings.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		err := configuration.Validate(configPath)
		if err != nil {
			ui.ErrorAndNotify("Config Validation Error", "%s", err.Error())
			return
		}

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/bed2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(calibration.Command)
	rootCmd.AddCommand(channel.Command)
	rootCmd.AddCommand(journal.Command)
	rootCmd.AddCommand(serial.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("bed", pterm.NewStyle(pterm.FgLightRed)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightRed)),
	).Render()
	if err != nil {
		fmt.Println("bed2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

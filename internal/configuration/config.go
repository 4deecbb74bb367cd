package configuration

import (
	"os"
	"time"

	"github.com/markusressel/bed2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath" yaml:"dbPath"`

	// ControlTickRate is the time between two control cycles
	ControlTickRate time.Duration `json:"controlTickRate" yaml:"controlTickRate"`
	// SampleInterval is the minimum time between two samples of the same thermistor
	SampleInterval time.Duration `json:"sampleInterval" yaml:"sampleInterval"`
	// HistorySize is the number of valid samples kept per channel for averaging
	HistorySize int `json:"historySize" yaml:"historySize"`
	// DebugReportInterval is the interval of the status report while debug mode is on
	DebugReportInterval time.Duration `json:"debugReportInterval" yaml:"debugReportInterval"`

	// RawMax is the largest value the ADC can report, e.g. 1023 for 10 bit
	RawMax        int           `json:"rawMax" yaml:"rawMax"`
	RelayPolarity RelayPolarity `json:"relayPolarity" yaml:"relayPolarity"`

	Calibration []CalibrationPointConfig `json:"calibration" yaml:"calibration"`
	Channels    []ChannelConfig          `json:"channels" yaml:"channels"`
	Sections    []SectionConfig          `json:"sections" yaml:"sections"`

	Control ControlConfig `json:"control" yaml:"control"`
	Safety  SafetyConfig  `json:"safety" yaml:"safety"`
	Signal  SignalConfig  `json:"signal" yaml:"signal"`

	Serial     SerialConfig     `json:"serial" yaml:"serial"`
	Console    ConsoleConfig    `json:"console" yaml:"console"`
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
	Api        ApiConfig        `json:"api" yaml:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("bed2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/bed2go/")
	}

	viper.SetEnvPrefix("BED2GO")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	defaults := DefaultConfiguration()

	viper.SetDefault("dbpath", defaults.DbPath)
	viper.SetDefault("ControlTickRate", defaults.ControlTickRate)
	viper.SetDefault("SampleInterval", defaults.SampleInterval)
	viper.SetDefault("HistorySize", defaults.HistorySize)
	viper.SetDefault("DebugReportInterval", defaults.DebugReportInterval)
	viper.SetDefault("RawMax", defaults.RawMax)
	viper.SetDefault("RelayPolarity", defaults.RelayPolarity)

	viper.SetDefault("calibration", defaults.Calibration)
	viper.SetDefault("channels", []ChannelConfig{})
	viper.SetDefault("sections", []SectionConfig{})

	viper.SetDefault("control.strategy", defaults.Control.Strategy)
	viper.SetDefault("control.hysteresis.band", defaults.Control.Hysteresis.Band)
	viper.SetDefault("control.pid.p", defaults.Control.Pid.P)
	viper.SetDefault("control.pid.i", defaults.Control.Pid.I)
	viper.SetDefault("control.pid.d", defaults.Control.Pid.D)
	viper.SetDefault("control.pid.threshold", defaults.Control.Pid.Threshold)
	viper.SetDefault("control.pid.integralLimit", defaults.Control.Pid.IntegralLimit)

	viper.SetDefault("safety.maxTemperature", defaults.Safety.MaxTemperature)

	viper.SetDefault("signal.enabled", defaults.Signal.Enabled)
	viper.SetDefault("signal.timeout", defaults.Signal.Timeout)
	viper.SetDefault("signal.pwmMin", defaults.Signal.PwmMin)
	viper.SetDefault("signal.pwmMax", defaults.Signal.PwmMax)
	viper.SetDefault("signal.tempMin", defaults.Signal.TempMin)
	viper.SetDefault("signal.tempMax", defaults.Signal.TempMax)

	viper.SetDefault("serial.baudRate", defaults.Serial.BaudRate)
	viper.SetDefault("console.enabled", defaults.Console.Enabled)

	viper.SetDefault("statistics.enabled", defaults.Statistics.Enabled)
	viper.SetDefault("statistics.port", defaults.Statistics.Port)

	viper.SetDefault("api.enabled", defaults.Api.Enabled)
	viper.SetDefault("api.host", defaults.Api.Host)
	viper.SetDefault("api.port", defaults.Api.Port)
}

// DetectAndReadConfigFile detects the path of the first existing config file
func DetectAndReadConfigFile() string {
	err := readInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			ui.FatalWithoutStacktrace("No config file found, run 'bed2go config init' to create one")
		}
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	return getFilePath()
}

// readInConfig reads and parses the config file
func readInConfig() error {
	return viper.ReadInConfig()
}

// getFilePath this is only populated _after_ readInConfig()
func getFilePath() string {
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.FatalWithoutStacktrace("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		enumHookFunc(),
	)
}

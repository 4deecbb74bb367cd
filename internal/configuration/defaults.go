package configuration

import (
	"fmt"
	"time"
)

const (
	DefaultChannelCount = 16
	DefaultSectionCount = 4
)

// DefaultCalibration maps raw 10 bit samples of the stock 100k NTC thermistors
// behind a 10k pullup to °C.
var DefaultCalibration = []CalibrationPointConfig{
	{Raw: 1, Temp: 300},
	{Raw: 200, Temp: 250},
	{Raw: 300, Temp: 200},
	{Raw: 400, Temp: 150},
	{Raw: 500, Temp: 120},
	{Raw: 600, Temp: 90},
	{Raw: 700, Temp: 60},
	{Raw: 800, Temp: 30},
	{Raw: 900, Temp: 10},
	{Raw: 1023, Temp: 0},
}

// DefaultConfiguration returns the configuration of the reference board: 16 segments
// in 4 sections, thermistors on the IIO adc, relays on sysfs gpios and the section
// feedback on sysfs pwm channels.
func DefaultConfiguration() Configuration {
	calibration := make([]CalibrationPointConfig, len(DefaultCalibration))
	copy(calibration, DefaultCalibration)

	return Configuration{
		DbPath: "/etc/bed2go/bed2go.db",

		ControlTickRate:     500 * time.Millisecond,
		SampleInterval:      1 * time.Second,
		HistorySize:         10,
		DebugReportInterval: 5 * time.Second,

		RawMax:        1023,
		RelayPolarity: PolarityActiveLow,

		Calibration: calibration,
		Channels:    defaultChannels(),
		Sections:    defaultSections(),

		Control: ControlConfig{
			Strategy: StrategyHysteresis,
			Hysteresis: HysteresisConfig{
				Band: 4.0,
			},
			Pid: PidConfig{
				P:             0.1,
				I:             0.01,
				D:             0.05,
				Threshold:     0.5,
				IntegralLimit: 0,
			},
		},
		Safety: SafetyConfig{
			MaxTemperature: 120.0,
		},
		Signal: SignalConfig{
			Enabled: false,
			Timeout: 25 * time.Millisecond,
			PwmMin:  0,
			PwmMax:  255,
			TempMin: 20,
			TempMax: 120,
		},
		Serial: SerialConfig{
			Port:     "",
			BaudRate: 115200,
		},
		Console: ConsoleConfig{
			Enabled: true,
		},
		Statistics: StatisticsConfig{
			Enabled: false,
			Port:    9000,
		},
		Api: ApiConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    8080,
		},
	}
}

func defaultChannels() []ChannelConfig {
	channelsPerSection := DefaultChannelCount / DefaultSectionCount
	channels := make([]ChannelConfig, 0, DefaultChannelCount)
	for i := 0; i < DefaultChannelCount; i++ {
		channels = append(channels, ChannelConfig{
			ID:      i + 1,
			Section: i/channelsPerSection + 1,
			Sensor: IoConfig{
				File: &FileIoConfig{Path: fmt.Sprintf("/sys/bus/iio/devices/iio:device0/in_voltage%d_raw", i)},
			},
			Relay: IoConfig{
				File: &FileIoConfig{Path: fmt.Sprintf("/sys/class/gpio/gpio%d/value", 22+i)},
			},
		})
	}
	return channels
}

func defaultSections() []SectionConfig {
	sections := make([]SectionConfig, 0, DefaultSectionCount)
	for i := 0; i < DefaultSectionCount; i++ {
		sections = append(sections, SectionConfig{
			ID:     i + 1,
			Target: 0,
			Output: &IoConfig{
				File: &FileIoConfig{Path: fmt.Sprintf("/sys/class/pwm/pwmchip0/pwm%d/duty_cycle", i)},
			},
		})
	}
	return sections
}

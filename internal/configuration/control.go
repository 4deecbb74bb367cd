package configuration

import "time"

type ControlStrategy string

const (
	StrategyHysteresis ControlStrategy = "hysteresis"
	StrategyPid        ControlStrategy = "pid"
)

type RelayPolarity string

const (
	// PolarityActiveLow energizes the relay on logic LOW
	PolarityActiveLow  RelayPolarity = "activelow"
	PolarityActiveHigh RelayPolarity = "activehigh"
)

type ControlConfig struct {
	Strategy   ControlStrategy  `json:"strategy" yaml:"strategy"`
	Hysteresis HysteresisConfig `json:"hysteresis" yaml:"hysteresis"`
	Pid        PidConfig        `json:"pid" yaml:"pid"`
}

type HysteresisConfig struct {
	// Band is the total width of the dead zone centered on the target in °C,
	// heating switches at target ± Band/2. This is not a half band:
	// the default of 4 switches at ±2°C, a value of 2 switches at ±1°C.
	Band float64 `json:"band" yaml:"band"`
}

type PidConfig struct {
	P float64 `json:"p" yaml:"p"`
	I float64 `json:"i" yaml:"i"`
	D float64 `json:"d" yaml:"d"`
	// Threshold is the loop output above which a segment is switched on
	Threshold float64 `json:"threshold" yaml:"threshold"`
	// IntegralLimit bounds the accumulated integral error, 0 disables the bound
	IntegralLimit float64 `json:"integralLimit" yaml:"integralLimit"`
}

type SafetyConfig struct {
	// MaxTemperature is the ceiling in °C above which all segments are shut down
	MaxTemperature float64 `json:"maxTemperature" yaml:"maxTemperature"`
}

type SignalConfig struct {
	// Enabled reads the section targets from the setpoint pulse inputs every cycle
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Timeout is the maximum time to wait for a setpoint pulse
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	PwmMin  int     `json:"pwmMin" yaml:"pwmMin"`
	PwmMax  int     `json:"pwmMax" yaml:"pwmMax"`
	TempMin float64 `json:"tempMin" yaml:"tempMin"`
	TempMax float64 `json:"tempMax" yaml:"tempMax"`
}

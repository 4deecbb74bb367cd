package configuration

type ChannelConfig struct {
	// ID is the 1-based segment number used by the command interface
	ID int `json:"id" yaml:"id"`
	// Section is the 1-based id of the section this channel belongs to
	Section int `json:"section" yaml:"section"`

	Sensor IoConfig `json:"sensor" yaml:"sensor"`
	Relay  IoConfig `json:"relay" yaml:"relay"`
}

type SectionConfig struct {
	// ID is the 1-based section number
	ID int `json:"id" yaml:"id"`
	// Target is the initial target temperature in °C
	Target float64 `json:"target" yaml:"target"`

	// Output receives the average section temperature for the host controller
	Output *IoConfig `json:"output,omitempty" yaml:"output,omitempty"`
	// Setpoint is the pulse input carrying the target temperature from the host controller
	Setpoint *IoConfig `json:"setpoint,omitempty" yaml:"setpoint,omitempty"`
}

type CalibrationPointConfig struct {
	Raw  int     `json:"raw" yaml:"raw"`
	Temp float64 `json:"temp" yaml:"temp"`
}

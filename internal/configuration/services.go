package configuration

type SerialConfig struct {
	// Port of the host controller link, e.g. /dev/ttyACM0. Empty disables the link.
	Port     string `json:"port" yaml:"port"`
	BaudRate int    `json:"baudRate" yaml:"baudRate"`
}

type ConsoleConfig struct {
	// Enabled accepts operator commands on stdin
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Port    int  `json:"port" yaml:"port"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
}

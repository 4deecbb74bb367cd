package configuration

import (
	"fmt"

	"github.com/markusressel/bed2go/internal/util"
	"gopkg.in/yaml.v3"
)

// Marshal renders a configuration as yaml in the format read by LoadConfig
func Marshal(config Configuration) ([]byte, error) {
	data, err := yaml.Marshal(&config)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal configuration: %w", err)
	}
	return data, nil
}

// WriteConfigFile writes the configuration to the given path, replacing the file atomically
func WriteConfigFile(path string, config Configuration) error {
	data, err := Marshal(config)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data)
}

package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/bed2go/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateGeneral(config)
	if err != nil {
		return err
	}
	err = validateCalibration(config)
	if err != nil {
		return err
	}
	err = validateSections(config)
	if err != nil {
		return err
	}
	err = validateChannels(config)
	if err != nil {
		return err
	}
	err = validateControl(config)
	if err != nil {
		return err
	}
	err = validateSignal(config)
	if err != nil {
		return err
	}
	err = validateServices(config)
	if err != nil {
		return err
	}

	if containsCmdIo(config) {
		ui.Debug("Config file '%s' references external commands, make sure only root can modify them", path)
	}

	return nil
}

func validateGeneral(config *Configuration) error {
	if config.ControlTickRate <= 0 {
		return errors.New("controlTickRate must be > 0")
	}
	if config.SampleInterval < 0 {
		return errors.New("sampleInterval must be >= 0")
	}
	if config.HistorySize <= 0 {
		return errors.New("historySize must be >= 1")
	}
	if config.RawMax <= 1 {
		return errors.New("rawMax must be > 1")
	}

	supportedPolarities := []RelayPolarity{PolarityActiveLow, PolarityActiveHigh}
	if !slices.Contains(supportedPolarities, config.RelayPolarity) {
		return fmt.Errorf("unsupported relayPolarity '%s', use one of: %s | %s", config.RelayPolarity, PolarityActiveLow, PolarityActiveHigh)
	}
	if config.Safety.MaxTemperature <= 0 {
		return errors.New("safety: maxTemperature must be > 0")
	}
	return nil
}

func validateCalibration(config *Configuration) error {
	points := config.Calibration
	if len(points) < 2 {
		return errors.New("calibration: at least 2 points are required")
	}
	for i := 1; i < len(points); i++ {
		if points[i].Raw <= points[i-1].Raw {
			return fmt.Errorf("calibration: raw values must be strictly increasing, found %d after %d", points[i].Raw, points[i-1].Raw)
		}
	}
	return nil
}

func validateSections(config *Configuration) error {
	if len(config.Sections) <= 0 {
		return errors.New("no sections configured")
	}

	var sectionIds []int
	for _, sectionConfig := range config.Sections {
		if slices.Contains(sectionIds, sectionConfig.ID) {
			return fmt.Errorf("duplicate section id detected: %d", sectionConfig.ID)
		}
		sectionIds = append(sectionIds, sectionConfig.ID)

		if sectionConfig.ID < 1 || sectionConfig.ID > len(config.Sections) {
			return fmt.Errorf("section %d: id must be in range 1..%d", sectionConfig.ID, len(config.Sections))
		}

		if !isSectionInUse(sectionConfig, config.Channels) {
			return fmt.Errorf("section %d: no channel belongs to this section", sectionConfig.ID)
		}

		if sectionConfig.Output != nil {
			if err := validateIo(*sectionConfig.Output); err != nil {
				return fmt.Errorf("section %d: output: %w", sectionConfig.ID, err)
			}
		}
		if sectionConfig.Setpoint != nil {
			if err := validateIo(*sectionConfig.Setpoint); err != nil {
				return fmt.Errorf("section %d: setpoint: %w", sectionConfig.ID, err)
			}
		} else if config.Signal.Enabled {
			ui.Warning("Section %d has no setpoint input, its target can only be changed by configuration", sectionConfig.ID)
		}
	}

	return nil
}

func isSectionInUse(section SectionConfig, channels []ChannelConfig) bool {
	for _, channelConfig := range channels {
		if channelConfig.Section == section.ID {
			return true
		}
	}
	return false
}

func validateChannels(config *Configuration) error {
	if len(config.Channels) <= 0 {
		return errors.New("no channels configured")
	}

	var channelIds []int
	for _, channelConfig := range config.Channels {
		if slices.Contains(channelIds, channelConfig.ID) {
			return fmt.Errorf("duplicate channel id detected: %d", channelConfig.ID)
		}
		channelIds = append(channelIds, channelConfig.ID)

		if channelConfig.ID < 1 || channelConfig.ID > len(config.Channels) {
			return fmt.Errorf("channel %d: id must be in range 1..%d", channelConfig.ID, len(config.Channels))
		}

		if !sectionIdExists(channelConfig.Section, config) {
			return fmt.Errorf("channel %d: no section definition with id '%d' found", channelConfig.ID, channelConfig.Section)
		}

		if err := validateIo(channelConfig.Sensor); err != nil {
			return fmt.Errorf("channel %d: sensor: %w", channelConfig.ID, err)
		}
		if err := validateIo(channelConfig.Relay); err != nil {
			return fmt.Errorf("channel %d: relay: %w", channelConfig.ID, err)
		}
	}

	return nil
}

func sectionIdExists(sectionId int, config *Configuration) bool {
	for _, section := range config.Sections {
		if section.ID == sectionId {
			return true
		}
	}
	return false
}

func validateIo(config IoConfig) error {
	subConfigs := config.subConfigCount()
	if subConfigs > 1 {
		return errors.New("only one io type can be used per definition block")
	}
	if subConfigs <= 0 {
		return errors.New("sub-configuration is missing, use one of: file | cmd | virtual")
	}
	if config.File != nil && len(config.File.Path) <= 0 {
		return errors.New("no file path provided")
	}
	if config.Cmd != nil && len(config.Cmd.Exec) <= 0 {
		return errors.New("no executable provided")
	}
	return nil
}

func validateControl(config *Configuration) error {
	control := config.Control

	supportedStrategies := []string{string(StrategyHysteresis), string(StrategyPid)}
	if !slices.Contains(supportedStrategies, string(control.Strategy)) {
		return fmt.Errorf("control: unsupported strategy '%s', use one of: %s", control.Strategy, strings.Join(supportedStrategies, " | "))
	}

	if control.Hysteresis.Band < 0 {
		return errors.New("control: hysteresis band must be >= 0")
	}

	if control.Strategy == StrategyPid {
		pidConfig := control.Pid
		if pidConfig.P == 0 && pidConfig.I == 0 && pidConfig.D == 0 {
			return errors.New("control: all PID constants are zero")
		}
		if pidConfig.Threshold < 0 || pidConfig.Threshold >= 1 {
			return errors.New("control: pid threshold must be in range [0..1)")
		}
		if pidConfig.IntegralLimit < 0 {
			return errors.New("control: pid integralLimit must be >= 0")
		}
	}

	return nil
}

func validateSignal(config *Configuration) error {
	signal := config.Signal
	if signal.PwmMin >= signal.PwmMax {
		return fmt.Errorf("signal: pwmMin (%d) must be smaller than pwmMax (%d)", signal.PwmMin, signal.PwmMax)
	}
	if signal.TempMin >= signal.TempMax {
		return fmt.Errorf("signal: tempMin (%.1f) must be smaller than tempMax (%.1f)", signal.TempMin, signal.TempMax)
	}
	if signal.Timeout <= 0 {
		return errors.New("signal: timeout must be > 0")
	}
	if signal.Timeout >= config.ControlTickRate {
		ui.Warning("signal: timeout (%s) is not smaller than the controlTickRate (%s)", signal.Timeout, config.ControlTickRate)
	}
	return nil
}

func validateServices(config *Configuration) error {
	if config.Statistics.Enabled && !isValidPort(config.Statistics.Port) {
		return fmt.Errorf("statistics: invalid port %d", config.Statistics.Port)
	}
	if config.Api.Enabled && !isValidPort(config.Api.Port) {
		return fmt.Errorf("api: invalid port %d", config.Api.Port)
	}
	if len(config.Serial.Port) > 0 && config.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial: invalid baudRate %d", config.Serial.BaudRate)
	}
	return nil
}

func isValidPort(port int) bool {
	return port > 0 && port < 65535
}

func containsCmdIo(config *Configuration) bool {
	for _, channelConfig := range config.Channels {
		if channelConfig.Sensor.Cmd != nil || channelConfig.Relay.Cmd != nil {
			return true
		}
	}
	for _, sectionConfig := range config.Sections {
		if sectionConfig.Output != nil && sectionConfig.Output.Cmd != nil {
			return true
		}
		if sectionConfig.Setpoint != nil && sectionConfig.Setpoint.Cmd != nil {
			return true
		}
	}
	return false
}

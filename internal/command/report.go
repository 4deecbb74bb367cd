package command

import (
	"fmt"
	"strings"

	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/sensors"
)

const helpText = `Available commands:
  ON ALL              - Activate all segments
  OFF ALL             - Deactivate all segments
  ON <n>              - Activate segment <n> (1-%d)
  OFF <n>             - Deactivate segment <n> (1-%d)
  SET_PWM_RANGE <minPWM> <maxPWM> <minTemp> <maxTemp> - Configure PWM range
  DEBUG ON            - Enable debug mode
  DEBUG OFF           - Disable debug mode
  STATUS              - Display system status
  HELP                - Display this list of commands
  RESET_SAFETY        - Reset thermal safety state`

func HelpText(segments int) string {
	return fmt.Sprintf(helpText, segments, segments)
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}

func formatTemperature(channel engine.ChannelStatus) string {
	if channel.Temperature == sensors.FaultTemperature {
		return "fault"
	}
	return fmt.Sprintf("%.2f°C", channel.Temperature)
}

// StatusReport renders the STATUS response
func StatusReport(status engine.Status) string {
	var sb strings.Builder
	sb.WriteString("System Status:\n")
	sb.WriteString(fmt.Sprintf("Debug mode: %s\n", onOff(status.System.Debug)))
	if status.System.SafetyTriggered {
		sb.WriteString("Thermal safety: Triggered\n")
		if trip := status.System.Trip; trip != nil {
			sb.WriteString(fmt.Sprintf("  segment %d reached %.2f°C (limit %.1f°C) at %s\n",
				trip.Channel+1, trip.Temperature, trip.Ceiling, trip.At.Format("15:04:05")))
		}
	} else {
		sb.WriteString("Thermal safety: Normal\n")
	}
	sb.WriteString(fmt.Sprintf("Control: %s\n", status.System.Strategy))
	sb.WriteString(fmt.Sprintf("Signal: %s\n", status.System.Signal))

	for _, channel := range status.Channels {
		state := "Inactive"
		if channel.Active {
			state = "Active"
		}
		sb.WriteString(fmt.Sprintf("Segment %d: %s | Heating: %s | Temp: %s\n",
			channel.ID, state, onOff(channel.Heating), formatTemperature(channel)))
	}
	for _, section := range status.Sections {
		output := "-"
		if section.Output >= 0 {
			output = fmt.Sprintf("%d", section.Output)
		}
		sb.WriteString(fmt.Sprintf("Sec %d | Setpoint: %.2f°C | Avg: %.2f°C (%s) | Output: %s\n",
			section.ID, section.Target, section.Average, section.AverageSource, output))
	}
	sb.WriteString(ActiveSegments(status))
	return sb.String()
}

// DebugReport renders the periodic monitoring output of the debug mode
func DebugReport(status engine.Status) string {
	var sb strings.Builder
	sb.WriteString("=== System Monitoring ===\n")
	for _, channel := range status.Channels {
		state := "Inactive"
		if channel.Active {
			state = "Active"
		}
		sb.WriteString(fmt.Sprintf("Segment %d: %s | Temp: %s\n", channel.ID, state, formatTemperature(channel)))
	}
	for _, section := range status.Sections {
		sb.WriteString(fmt.Sprintf("Sec %d | Setpoint: %.2f°C\n", section.ID, section.Target))
	}
	sb.WriteString("=========================\n")
	sb.WriteString(ActiveSegments(status))
	return sb.String()
}

// ActiveSegments renders the list of active segments
func ActiveSegments(status engine.Status) string {
	var active []string
	for _, channel := range status.Channels {
		if channel.Active {
			active = append(active, fmt.Sprintf("%d", channel.ID))
		}
	}
	if len(active) == 0 {
		return "Active segments: None"
	}
	return "Active segments: " + strings.Join(active, ", ")
}

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/bed2go/internal/actuator"
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/signal"
	"github.com/markusressel/bed2go/internal/ui"
)

// HostTag marks responses to commands of the host controller
const HostTag = "(Duet)"

const safetyLatchedResponse = "Error: System in thermal safety state. Reset before continuing."

// Controller is the part of the engine the commands operate on
type Controller interface {
	Channels() int
	Activate(channel int) error
	Deactivate(channel int) error
	ActivateAll() error
	DeactivateAll() error
	ResetSafety()
	SetDebug(enabled bool)
	SetSignalRange(r signal.Range) error
	Status() engine.Status
}

// Dispatcher executes command lines against a Controller and renders the text response
type Dispatcher struct {
	controller Controller
	parser     Parser
}

func NewDispatcher(controller Controller) *Dispatcher {
	return &Dispatcher{
		controller: controller,
		parser:     Parser{Segments: controller.Channels()},
	}
}

// Handle parses and executes a single command line and returns the response
func (d *Dispatcher) Handle(line string, origin Origin) string {
	line = strings.TrimSpace(line)
	ui.Debug("Received command from %s: \"%s\"", origin, line)

	var lines []string
	if origin == Operator {
		lines = append(lines, fmt.Sprintf("Received command: \"%s\"", line))
	}

	cmd, err := d.parser.Parse(line, origin)
	if err != nil {
		lines = append(lines, tag(errorResponse(err), origin))
	} else {
		lines = append(lines, d.Execute(cmd))
	}
	return strings.Join(lines, "\n")
}

func errorResponse(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSegment):
		return "Error: Invalid segment number. Use HELP to see commands."
	case errors.Is(err, ErrMalformedArgument):
		return fmt.Sprintf("Error: %v. Use HELP to see commands.", err)
	default:
		return "Error: Unrecognized command. Use HELP to see commands."
	}
}

// Execute runs a parsed command and returns the response
func (d *Dispatcher) Execute(cmd Command) string {
	switch cmd.Kind {
	case Help:
		return HelpText(d.controller.Channels())
	case Status:
		return StatusReport(d.controller.Status())
	}

	var response string
	switch cmd.Kind {
	case OnAll:
		response = result(d.controller.ActivateAll(), "All segments activated.")
	case OffAll:
		response = result(d.controller.DeactivateAll(), "All segments deactivated.")
	case On:
		response = result(d.controller.Activate(cmd.Segment-1), fmt.Sprintf("Segment %d activated.", cmd.Segment))
	case Off:
		response = result(d.controller.Deactivate(cmd.Segment-1), fmt.Sprintf("Segment %d deactivated.", cmd.Segment))
	case Debug:
		d.controller.SetDebug(cmd.Enabled)
		ui.SetDebugEnabled(cmd.Enabled)
		if cmd.Enabled {
			response = "Debug mode enabled."
		} else {
			response = "Debug mode disabled."
		}
	case ResetSafety:
		d.controller.ResetSafety()
		response = "Thermal safety state reset. System ready for use."
	case SetPwmRange:
		if err := d.controller.SetSignalRange(cmd.Range); err != nil {
			response = fmt.Sprintf("Error: Invalid PWM range: %v.", err)
		} else {
			response = fmt.Sprintf("PWM range set: %s.", cmd.Range)
		}
	default:
		response = "Error: Unrecognized command. Use HELP to see commands."
	}

	// refresh the status board after every state change
	d.controller.Status()
	return tag(response, cmd.Origin)
}

func result(err error, success string) string {
	switch {
	case err == nil:
		return success
	case errors.Is(err, actuator.ErrSafetyLatched):
		return safetyLatchedResponse
	default:
		ui.Error("Command failed: %v", err)
		return fmt.Sprintf("Error: %v.", err)
	}
}

// tag appends the host tag to responses sent to the host controller
func tag(response string, origin Origin) string {
	if origin != Host {
		return response
	}
	if strings.HasSuffix(response, ".") {
		return strings.TrimSuffix(response, ".") + " " + HostTag + "."
	}
	return response + " " + HostTag
}

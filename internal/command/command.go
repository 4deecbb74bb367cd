// Package command parses the line based text commands of the operator console
// and the host controller link.
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/markusressel/bed2go/internal/signal"
)

var (
	ErrUnrecognized      = errors.New("unrecognized command")
	ErrInvalidSegment    = errors.New("invalid segment number")
	ErrMalformedArgument = errors.New("malformed argument")
)

type Kind int

const (
	On Kind = iota
	Off
	OnAll
	OffAll
	Debug
	Status
	ResetSafety
	Help
	SetPwmRange
)

// Origin identifies the issuer of a command
type Origin int

const (
	// Operator is the local console
	Operator Origin = iota
	// Host is the printer mainboard on the serial link
	Host
)

func (o Origin) String() string {
	if o == Host {
		return "host"
	}
	return "operator"
}

type Command struct {
	Kind   Kind
	Origin Origin
	// Segment is the 1-based segment number of On and Off
	Segment int
	// Enabled is the requested state of Debug
	Enabled bool
	// Range is the requested mapping of SetPwmRange
	Range signal.Range
}

// Parser turns command lines into commands
type Parser struct {
	// Segments is the number of segments, valid segment numbers are 1..Segments
	Segments int
}

// Parse parses a single command line. Keywords are case-insensitive,
// tokens are separated by whitespace.
func (p Parser) Parse(line string, origin Origin) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, ErrUnrecognized
	}

	cmd := Command{Origin: origin}
	keyword := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch keyword {
	case "ON", "OFF":
		if err := expectArgs(keyword, args, 1); err != nil {
			return cmd, err
		}
		if strings.EqualFold(args[0], "ALL") {
			cmd.Kind = OnAll
			if keyword == "OFF" {
				cmd.Kind = OffAll
			}
			return cmd, nil
		}
		segment, err := strconv.Atoi(args[0])
		if err != nil {
			return cmd, fmt.Errorf("%w: '%s' is not a segment number", ErrMalformedArgument, args[0])
		}
		if segment < 1 || segment > p.Segments {
			return cmd, fmt.Errorf("%w: %d", ErrInvalidSegment, segment)
		}
		cmd.Kind = On
		if keyword == "OFF" {
			cmd.Kind = Off
		}
		cmd.Segment = segment
	case "DEBUG":
		if err := expectArgs(keyword, args, 1); err != nil {
			return cmd, err
		}
		cmd.Kind = Debug
		switch strings.ToUpper(args[0]) {
		case "ON":
			cmd.Enabled = true
		case "OFF":
			cmd.Enabled = false
		default:
			return cmd, fmt.Errorf("%w: expected ON or OFF, got '%s'", ErrMalformedArgument, args[0])
		}
	case "STATUS":
		cmd.Kind = Status
		return cmd, expectArgs(keyword, args, 0)
	case "RESET_SAFETY":
		cmd.Kind = ResetSafety
		return cmd, expectArgs(keyword, args, 0)
	case "HELP":
		cmd.Kind = Help
		return cmd, expectArgs(keyword, args, 0)
	case "SET_PWM_RANGE":
		if err := expectArgs(keyword, args, 4); err != nil {
			return cmd, err
		}
		cmd.Kind = SetPwmRange
		r, err := parseRange(args)
		if err != nil {
			return cmd, err
		}
		cmd.Range = r
	default:
		return cmd, fmt.Errorf("%w: %s", ErrUnrecognized, tokens[0])
	}
	return cmd, nil
}

func expectArgs(keyword string, args []string, count int) error {
	if len(args) != count {
		return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrMalformedArgument, keyword, count, len(args))
	}
	return nil
}

func parseRange(args []string) (signal.Range, error) {
	pwmMin, err := strconv.Atoi(args[0])
	if err != nil {
		return signal.Range{}, fmt.Errorf("%w: minPWM '%s'", ErrMalformedArgument, args[0])
	}
	pwmMax, err := strconv.Atoi(args[1])
	if err != nil {
		return signal.Range{}, fmt.Errorf("%w: maxPWM '%s'", ErrMalformedArgument, args[1])
	}
	tempMin, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return signal.Range{}, fmt.Errorf("%w: minTemp '%s'", ErrMalformedArgument, args[2])
	}
	tempMax, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return signal.Range{}, fmt.Errorf("%w: maxTemp '%s'", ErrMalformedArgument, args[3])
	}
	for _, value := range []float64{tempMin, tempMax} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return signal.Range{}, fmt.Errorf("%w: temperature '%v'", ErrMalformedArgument, value)
		}
	}
	return signal.Range{PwmMin: pwmMin, PwmMax: pwmMax, TempMin: tempMin, TempMax: tempMax}, nil
}

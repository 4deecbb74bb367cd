// Package sensors turns raw thermistor samples into temperatures.
package sensors

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/markusressel/bed2go/internal/calibration"
	"github.com/markusressel/bed2go/internal/hardware"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/markusressel/bed2go/internal/util"
)

// FaultTemperature is reported as the value of a faulted read
const FaultTemperature = -999.0

var (
	ErrSensorFault    = errors.New("sensor fault")
	ErrUnknownChannel = errors.New("unknown channel")
)

type Config struct {
	// RawMax is the largest sample the ADC can produce, it indicates an open circuit
	RawMax int
	// SampleInterval is the minimum time between two samples of the same channel
	SampleInterval time.Duration
	// HistorySize is the number of valid samples kept per channel
	HistorySize int
}

// Reading is the result of a single temperature read
type Reading struct {
	Channel     int
	Temperature float64
	Err         error
	At          time.Time
}

// Valid returns true if the reading holds a usable temperature
func (r Reading) Valid() bool {
	return r.Err == nil
}

type sample struct {
	Reading
	taken bool
}

// Reader converts raw samples of all channels into temperatures and caches the
// result of each channel for the configured sample interval.
// A Reader is not safe for concurrent use.
type Reader struct {
	table  *calibration.Table
	inputs []hardware.AnalogInput
	config Config
	now    func() time.Time

	samples []sample
	history []*util.RollingWindow
}

func NewReader(table *calibration.Table, inputs []hardware.AnalogInput, config Config) *Reader {
	history := make([]*util.RollingWindow, len(inputs))
	for i := range history {
		history[i] = util.CreateRollingWindow(config.HistorySize)
	}
	return &Reader{
		table:   table,
		inputs:  inputs,
		config:  config,
		now:     time.Now,
		samples: make([]sample, len(inputs)),
		history: history,
	}
}

// WithClock replaces the time source, used by tests
func (r *Reader) WithClock(now func() time.Time) *Reader {
	r.now = now
	return r
}

// Channels returns the number of channels known to this reader
func (r *Reader) Channels() int {
	return len(r.inputs)
}

// ReadTemperature returns the temperature of the given channel in °C.
// A faulted read returns FaultTemperature and an error wrapping ErrSensorFault.
func (r *Reader) ReadTemperature(channel int) (float64, error) {
	if channel < 0 || channel >= len(r.inputs) {
		return math.NaN(), fmt.Errorf("%w: %d", ErrUnknownChannel, channel)
	}

	now := r.now()
	last := &r.samples[channel]
	if last.taken && now.Sub(last.At) < r.config.SampleInterval {
		return last.Temperature, last.Err
	}

	value, err := r.sample(channel)
	if err != nil {
		ui.Debug("Channel %d: %v", channel+1, err)
	} else {
		r.history[channel].Append(value)
	}

	*last = sample{
		Reading: Reading{Channel: channel, Temperature: value, Err: err, At: now},
		taken:   true,
	}
	return value, err
}

func (r *Reader) sample(channel int) (float64, error) {
	raw, err := r.inputs[channel].ReadRaw()
	if err != nil {
		return FaultTemperature, fmt.Errorf("%w: %w", ErrSensorFault, err)
	}
	if raw <= 0 || raw >= r.config.RawMax {
		return FaultTemperature, fmt.Errorf("%w: raw sample %d out of range", ErrSensorFault, raw)
	}
	return r.table.Temperature(raw), nil
}

// Read reads the given channel like ReadTemperature does and returns the result as a Reading
func (r *Reader) Read(channel int) Reading {
	value, err := r.ReadTemperature(channel)
	if err != nil && errors.Is(err, ErrUnknownChannel) {
		return Reading{Channel: channel, Temperature: value, Err: err}
	}
	return r.samples[channel].Reading
}

// Last returns the cached result of the last read without sampling,
// false if the channel has never been read.
func (r *Reader) Last(channel int) (Reading, bool) {
	if channel < 0 || channel >= len(r.inputs) {
		return Reading{Channel: channel, Temperature: math.NaN(), Err: ErrUnknownChannel}, false
	}
	last := r.samples[channel]
	return last.Reading, last.taken
}

// History returns the average of the recent valid samples of the given channel,
// false if there are none.
func (r *Reader) History(channel int) (float64, bool) {
	if channel < 0 || channel >= len(r.history) {
		return 0, false
	}
	return r.history[channel].Avg()
}

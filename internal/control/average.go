package control

import (
	"github.com/markusressel/bed2go/internal/signal"
	"github.com/markusressel/bed2go/internal/util"
)

// DefaultTemperature is assumed for a section without any valid reading
const DefaultTemperature = 25.0

// AverageSource tells which readings a section average was computed from
type AverageSource int

const (
	SourceActive AverageSource = iota
	SourceAll
	SourceDefault
)

func (s AverageSource) String() string {
	switch s {
	case SourceActive:
		return "active"
	case SourceAll:
		return "all"
	default:
		return "default"
	}
}

// SectionAverage is the mean of the valid readings of the active channels. If there are
// none it falls back to the mean of all valid readings, and to DefaultTemperature after that.
func SectionAverage(readings []ChannelReading) (float64, AverageSource) {
	var active []float64
	var all []float64
	for _, reading := range readings {
		if !reading.Valid() {
			continue
		}
		all = append(all, reading.Temperature)
		if reading.Active {
			active = append(active, reading.Temperature)
		}
	}

	if len(active) > 0 {
		return util.Avg(active), SourceActive
	}
	if len(all) > 0 {
		return util.Avg(all), SourceAll
	}
	return DefaultTemperature, SourceDefault
}

// AggregateOutput returns the pwm value which reports the section average
// back to the host controller on the inverted pwm scale.
func AggregateOutput(readings []ChannelReading, signalRange signal.Range) (int, float64, AverageSource) {
	avg, source := SectionAverage(readings)
	return signalRange.FromTemperature(avg), avg, source
}

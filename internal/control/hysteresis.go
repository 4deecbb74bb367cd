package control

import (
	"time"

	"github.com/markusressel/bed2go/internal/ui"
)

// Hysteresis switches all active channels of a section together based on the section
// average. Within the dead zone of width Band centered on the target nothing changes.
type Hysteresis struct {
	// Band is the full width of the dead zone, not the distance from the target:
	// heating starts below target - Band/2 and stops above target + Band/2.
	// Band 4 switches at ±2°C.
	Band float64
}

func (h *Hysteresis) Name() string {
	return "hysteresis"
}

func (h *Hysteresis) Decide(section int, target float64, readings []ChannelReading, now time.Time) []Decision {
	avg, source := SectionAverage(readings)

	action := Hold
	if avg < target-h.Band/2 {
		action = DriveOn
	} else if avg > target+h.Band/2 {
		action = DriveOff
	}

	ui.Debug("Section %d: average %.1f°C (%s), target %.1f°C -> %s", section, avg, source, target, action)

	var decisions []Decision
	for _, reading := range readings {
		if reading.Active {
			decisions = append(decisions, Decision{Channel: reading.Channel, Action: action})
		}
	}
	return decisions
}

func (h *Hysteresis) Reset() {}

func (h *Hysteresis) ResetChannel(channel int) {}

// Package signal maps pwm values of the host controller link to temperatures and back.
package signal

import (
	"fmt"
	"math"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/util"
)

// Range relates the pwm range [PwmMin, PwmMax] to the temperature range [TempMin, TempMax]
type Range struct {
	PwmMin  int
	PwmMax  int
	TempMin float64
	TempMax float64
}

func FromConfig(config configuration.SignalConfig) Range {
	return Range{
		PwmMin:  config.PwmMin,
		PwmMax:  config.PwmMax,
		TempMin: config.TempMin,
		TempMax: config.TempMax,
	}
}

func (r Range) Validate() error {
	if r.PwmMin >= r.PwmMax {
		return fmt.Errorf("pwm min (%d) must be smaller than pwm max (%d)", r.PwmMin, r.PwmMax)
	}
	if r.TempMin >= r.TempMax {
		return fmt.Errorf("temperature min (%.1f) must be smaller than temperature max (%.1f)", r.TempMin, r.TempMax)
	}
	return nil
}

// Contains returns true if the pwm value lies within [PwmMin, PwmMax]
func (r Range) Contains(pwm float64) bool {
	return pwm >= float64(r.PwmMin) && pwm <= float64(r.PwmMax)
}

// ToTemperature maps a pwm value linearly to a temperature
func (r Range) ToTemperature(pwm float64) float64 {
	return util.Lerp(pwm, float64(r.PwmMin), float64(r.PwmMax), r.TempMin, r.TempMax)
}

// FromTemperature maps a temperature to the inverted pwm range, so TempMin yields PwmMax
// and TempMax yields PwmMin. The result is rounded and clamped to the pwm range.
func (r Range) FromTemperature(temp float64) int {
	value := util.Lerp(temp, r.TempMin, r.TempMax, float64(r.PwmMax), float64(r.PwmMin))
	return util.Coerce(int(math.Round(value)), r.PwmMin, r.PwmMax)
}

func (r Range) String() string {
	return fmt.Sprintf("PWM %d-%d -> %.1f-%.1f°C", r.PwmMin, r.PwmMax, r.TempMin, r.TempMax)
}

package util

import (
	"math"
	"time"
)

type PidLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64
	// Minimum output value
	outMin float64
	// Maximum output value
	outMax float64
	// bound for the accumulated integral error, 0 means unbounded
	integralLimit float64

	// error of the last loop
	lastError float64
	// accumulated error over time, i.e. integral error
	integral float64
	// last execution time of the loop
	lastTime time.Time
}

func NewPidLoop(p, i, d, min, max float64) *PidLoop {
	return &PidLoop{
		p:      p,
		i:      i,
		d:      d,
		outMin: min,
		outMax: max,
	}
}

// WithIntegralLimit bounds the accumulated integral error to [-limit..limit].
// A limit <= 0 disables the bound.
func (p *PidLoop) WithIntegralLimit(limit float64) *PidLoop {
	p.integralLimit = math.Abs(limit)
	return p
}

// LoopAt advances the pid loop as if it was executed at the given point in time
func (p *PidLoop) LoopAt(target float64, measured float64, now time.Time) float64 {
	err := target - measured

	if p.lastTime.IsZero() {
		// there is no meaningful time delta on the first run,
		// so only the proportional term is applied
		p.lastTime = now
		p.lastError = err
		return p.clamp(p.p * err)
	}

	dt := now.Sub(p.lastTime).Seconds()

	proportionalTerm := p.p * err

	if dt > 0 {
		p.integral += err * dt
		if p.integralLimit > 0 {
			p.integral = Coerce(p.integral, -p.integralLimit, p.integralLimit)
		}
	}
	integralTerm := p.i * p.integral

	derivativeTerm := 0.0
	if dt > 0 {
		derivativeTerm = p.d * (err - p.lastError) / dt
	}

	p.lastTime = now
	p.lastError = err

	return p.clamp(proportionalTerm + integralTerm + derivativeTerm)
}

// Integral returns the accumulated integral error
func (p *PidLoop) Integral() float64 {
	return p.integral
}

// Reset drops all accumulated state, the next loop behaves like the first one
func (p *PidLoop) Reset() {
	p.lastError = 0
	p.integral = 0
	p.lastTime = time.Time{}
}

func (p *PidLoop) clamp(output float64) float64 {
	if math.IsNaN(output) {
		return p.outMin
	}
	return Coerce(output, p.outMin, p.outMax)
}

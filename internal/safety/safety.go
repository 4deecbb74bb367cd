// Package safety implements the thermal interlock of the heated bed.
package safety

import (
	"sync/atomic"
	"time"

	"github.com/markusressel/bed2go/internal/ui"
)

// Latch is the thermal safety flag. Once triggered it stays set until it is reset explicitly.
type Latch struct {
	triggered atomic.Bool
}

func (l *Latch) Triggered() bool {
	return l.triggered.Load()
}

// Trigger sets the latch and returns true if it was not set before
func (l *Latch) Trigger() bool {
	return l.triggered.CompareAndSwap(false, true)
}

func (l *Latch) Reset() {
	l.triggered.Store(false)
}

// Trip describes the reading that triggered the latch
type Trip struct {
	Channel     int       `json:"channel"`
	Temperature float64   `json:"temperature"`
	Ceiling     float64   `json:"ceiling"`
	At          time.Time `json:"at"`
}

// TemperatureSource provides the temperatures of all channels
type TemperatureSource interface {
	Channels() int
	ReadTemperature(channel int) (float64, error)
}

// Shutdown switches off all heating segments
type Shutdown interface {
	DeactivateAll() error
}

// Monitor checks all channels against the temperature ceiling
type Monitor struct {
	latch          *Latch
	source         TemperatureSource
	shutdown       Shutdown
	maxTemperature float64
	now            func() time.Time

	trip      *Trip
	listeners []func(Trip)
}

func NewMonitor(latch *Latch, source TemperatureSource, shutdown Shutdown, maxTemperature float64) *Monitor {
	return &Monitor{
		latch:          latch,
		source:         source,
		shutdown:       shutdown,
		maxTemperature: maxTemperature,
		now:            time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (m *Monitor) WithClock(now func() time.Time) *Monitor {
	m.now = now
	return m
}

// OnTrip registers a listener which is called once for every time the latch is set
func (m *Monitor) OnTrip(listener func(trip Trip)) {
	m.listeners = append(m.listeners, listener)
}

// CheckThermalSafety scans all channels and shuts everything down on the first
// channel above the ceiling. Faulted reads are skipped.
// It returns true if the latch is set after the scan.
func (m *Monitor) CheckThermalSafety() bool {
	for channel := 0; channel < m.source.Channels(); channel++ {
		temp, err := m.source.ReadTemperature(channel)
		if err != nil {
			continue
		}
		if temp <= m.maxTemperature {
			continue
		}

		first := m.latch.Trigger()
		if err := m.shutdown.DeactivateAll(); err != nil {
			ui.Error("Thermal shutdown incomplete: %v", err)
		}
		if first {
			trip := Trip{
				Channel:     channel,
				Temperature: temp,
				Ceiling:     m.maxTemperature,
				At:          m.now(),
			}
			m.trip = &trip
			for _, listener := range m.listeners {
				listener(trip)
			}
		}
		break
	}
	return m.latch.Triggered()
}

// ResetThermalSafety clears the latch unconditionally, segments stay as they are
func (m *Monitor) ResetThermalSafety() {
	m.latch.Reset()
	m.trip = nil
}

func (m *Monitor) Triggered() bool {
	return m.latch.Triggered()
}

// LastTrip returns the trip that set the latch, false if the latch is not set
func (m *Monitor) LastTrip() (Trip, bool) {
	if m.trip == nil || !m.latch.Triggered() {
		return Trip{}, false
	}
	return *m.trip, true
}

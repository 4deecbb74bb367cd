package engine

import (
	"strconv"
	"time"

	"github.com/markusressel/bed2go/internal/safety"
	"github.com/markusressel/bed2go/internal/sensors"
	"github.com/markusressel/bed2go/internal/signal"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/exp/slices"
)

type ChannelStatus struct {
	ID      int  `json:"id"`
	Section int  `json:"section"`
	Active  bool `json:"active"`
	Heating bool `json:"heating"`
	// Temperature is FaultTemperature if the last read failed
	Temperature float64 `json:"temperature"`
	Fault       string  `json:"fault,omitempty"`
	// Average is the average of the recent valid readings
	Average float64   `json:"average"`
	ReadAt  time.Time `json:"readAt"`
}

type SectionStatus struct {
	ID            int     `json:"id"`
	Channels      []int   `json:"channels"`
	Target        float64 `json:"target"`
	Average       float64 `json:"average"`
	AverageSource string  `json:"averageSource"`
	// Output is the last value written to the aggregate output, -1 if there is none
	Output int `json:"output"`
}

type SystemStatus struct {
	Debug           bool         `json:"debug"`
	SafetyTriggered bool         `json:"safetyTriggered"`
	Trip            *safety.Trip `json:"trip,omitempty"`
	Strategy        string       `json:"strategy"`
	Signal          signal.Range `json:"signal"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Status is a point in time copy of the whole controller state
type Status struct {
	System   SystemStatus    `json:"system"`
	Channels []ChannelStatus `json:"channels"`
	Sections []SectionStatus `json:"sections"`
}

const systemKey = "system"

// Board is the read-only view of the controller state for other goroutines.
// It is written by the engine after each cycle and command.
type Board struct {
	channels cmap.ConcurrentMap[string, ChannelStatus]
	sections cmap.ConcurrentMap[string, SectionStatus]
	system   cmap.ConcurrentMap[string, SystemStatus]
}

func NewBoard() *Board {
	return &Board{
		channels: cmap.New[ChannelStatus](),
		sections: cmap.New[SectionStatus](),
		system:   cmap.New[SystemStatus](),
	}
}

func (b *Board) Channel(id int) (ChannelStatus, bool) {
	return b.channels.Get(strconv.Itoa(id))
}

func (b *Board) Section(id int) (SectionStatus, bool) {
	return b.sections.Get(strconv.Itoa(id))
}

func (b *Board) System() SystemStatus {
	status, _ := b.system.Get(systemKey)
	return status
}

// Snapshot returns the current status with channels and sections ordered by id
func (b *Board) Snapshot() Status {
	result := Status{
		System:   b.System(),
		Channels: []ChannelStatus{},
		Sections: []SectionStatus{},
	}
	for _, channel := range b.channels.Items() {
		result.Channels = append(result.Channels, channel)
	}
	for _, s := range b.sections.Items() {
		result.Sections = append(result.Sections, s)
	}
	slices.SortFunc(result.Channels, func(a, b ChannelStatus) int {
		return a.ID - b.ID
	})
	slices.SortFunc(result.Sections, func(a, b SectionStatus) int {
		return a.ID - b.ID
	})
	return result
}

// Publish writes the current controller state to the board.
// Temperatures are taken from the reader cache, nothing is sampled.
func (e *Engine) Publish() {
	for channel := 0; channel < e.reader.Channels(); channel++ {
		status := ChannelStatus{
			ID:          channel + 1,
			Section:     e.channelSections[channel],
			Active:      e.actuator.IsActive(channel),
			Heating:     e.actuator.IsHeating(channel),
			Temperature: sensors.FaultTemperature,
		}
		if reading, ok := e.reader.Last(channel); ok {
			status.Temperature = reading.Temperature
			status.ReadAt = reading.At
			if reading.Err != nil {
				status.Fault = reading.Err.Error()
			}
		} else {
			status.Fault = "not read yet"
		}
		if avg, ok := e.reader.History(channel); ok {
			status.Average = avg
		}
		e.board.channels.Set(strconv.Itoa(status.ID), status)
	}

	for _, s := range e.sections {
		channels := make([]int, 0, len(s.channels))
		for _, channel := range s.channels {
			channels = append(channels, channel+1)
		}
		e.board.sections.Set(strconv.Itoa(s.id), SectionStatus{
			ID:            s.id,
			Channels:      channels,
			Target:        s.target,
			Average:       s.average,
			AverageSource: s.source.String(),
			Output:        s.lastOutput,
		})
	}

	system := SystemStatus{
		Debug:           e.debug,
		SafetyTriggered: e.monitor.Triggered(),
		Strategy:        e.strategy.Name(),
		Signal:          e.signalRange,
		UpdatedAt:       e.now(),
	}
	if trip, ok := e.monitor.LastTrip(); ok {
		system.Trip = &trip
	}
	e.board.system.Set(systemKey, system)
}

// Status publishes the current controller state and returns a copy of it
func (e *Engine) Status() Status {
	e.Publish()
	return e.board.Snapshot()
}

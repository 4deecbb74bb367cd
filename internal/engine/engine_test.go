package engine

import (
	"context"
	"testing"
	"time"

	"github.com/markusressel/bed2go/internal/actuator"
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/hardware"
	"github.com/markusressel/bed2go/internal/safety"
	"github.com/markusressel/bed2go/internal/signal"
	"github.com/stretchr/testify/assert"
)

type testBed struct {
	engine    *Engine
	sensors   []*hardware.VirtualAnalogInput
	relays    []*hardware.VirtualDigitalOutput
	outputs   map[int]*hardware.VirtualPwmOutput
	setpoints map[int]*hardware.VirtualPulseInput
	now       time.Time
}

func (b *testBed) advance() {
	b.now = b.now.Add(time.Second)
}

func createTestBed(t *testing.T, modify func(config *configuration.Configuration)) *testBed {
	config := configuration.DefaultConfiguration()
	config.Signal.Timeout = 5 * time.Millisecond
	if modify != nil {
		modify(&config)
	}

	bed := &testBed{
		outputs:   map[int]*hardware.VirtualPwmOutput{},
		setpoints: map[int]*hardware.VirtualPulseInput{},
		now:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	hw := Hardware{
		Outputs:   map[int]hardware.PwmOutput{},
		Setpoints: map[int]hardware.PulseInput{},
	}
	for range config.Channels {
		sensor := hardware.NewVirtualAnalogInput(700)
		relay := hardware.NewVirtualDigitalOutput(true)
		bed.sensors = append(bed.sensors, sensor)
		bed.relays = append(bed.relays, relay)
		hw.Sensors = append(hw.Sensors, sensor)
		hw.Relays = append(hw.Relays, relay)
	}
	for _, sectionConfig := range config.Sections {
		output := hardware.NewVirtualPwmOutput()
		setpoint := hardware.NewVirtualPulseInput(0)
		bed.outputs[sectionConfig.ID] = output
		bed.setpoints[sectionConfig.ID] = setpoint
		hw.Outputs[sectionConfig.ID] = output
		hw.Setpoints[sectionConfig.ID] = setpoint
	}

	engine, err := New(config, hw)
	assert.NoError(t, err)
	bed.engine = engine.WithClock(func() time.Time { return bed.now })
	assert.NoError(t, bed.engine.Init())
	return bed
}

func TestNewHardwareFromVirtualConfig(t *testing.T) {
	// GIVEN
	config := configuration.DefaultConfiguration()
	for i := range config.Channels {
		config.Channels[i].Sensor = configuration.IoConfig{Virtual: &configuration.VirtualIoConfig{Value: 700}}
		config.Channels[i].Relay = configuration.IoConfig{Virtual: &configuration.VirtualIoConfig{}}
	}
	config.Sections[0].Setpoint = &configuration.IoConfig{Virtual: &configuration.VirtualIoConfig{Value: 100}}

	// WHEN
	hw, err := NewHardware(config)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, hw.Sensors, 16)
	assert.Len(t, hw.Relays, 16)
	assert.Len(t, hw.Outputs, 4)
	assert.Len(t, hw.Setpoints, 1)
	assert.True(t, hw.Relays[0].(*hardware.VirtualDigitalOutput).High())

	engine, err := New(config, hw)
	assert.NoError(t, err)
	temp, err := engine.ReadTemperature(0)
	assert.NoError(t, err)
	assert.Equal(t, 60.0, temp)
}

func TestInitSwitchesEverythingOff(t *testing.T) {
	// WHEN
	bed := createTestBed(t, nil)

	// THEN
	assert.Empty(t, bed.engine.ActiveChannels())
	for _, relay := range bed.relays {
		assert.True(t, relay.High())
	}
	status := bed.engine.Board().Snapshot()
	assert.Len(t, status.Channels, 16)
	assert.Len(t, status.Sections, 4)
	assert.Equal(t, 1, status.Channels[0].ID)
	assert.Equal(t, 16, status.Channels[15].ID)
	assert.Equal(t, []int{5, 6, 7, 8}, status.Sections[1].Channels)
}

func TestCycleHysteresisSwitchesOff(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	assert.NoError(t, bed.engine.SetTarget(1, 50))
	assert.NoError(t, bed.engine.Activate(0))
	assert.False(t, bed.relays[0].High())

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	assert.True(t, bed.relays[0].High())
	status, _ := bed.engine.Board().Channel(1)
	assert.True(t, status.Active)
	assert.False(t, status.Heating)
	assert.Equal(t, 60.0, status.Temperature)
}

func TestCycleHysteresisSwitchesOn(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	assert.NoError(t, bed.engine.SetTarget(1, 50))
	assert.NoError(t, bed.engine.Activate(1))
	bed.engine.Cycle(context.Background())
	assert.True(t, bed.relays[1].High())

	// WHEN
	assert.NoError(t, bed.engine.SetTarget(1, 70))
	bed.advance()
	bed.engine.Cycle(context.Background())

	// THEN
	assert.False(t, bed.relays[1].High())
	assert.True(t, bed.relays[0].High())
	status, _ := bed.engine.Board().Section(1)
	assert.Equal(t, 70.0, status.Target)
	assert.Equal(t, 60.0, status.Average)
	assert.Equal(t, "active", status.AverageSource)
}

func TestCycleThermalSafety(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	var trips []safety.Trip
	bed.engine.OnTrip(func(trip safety.Trip) {
		trips = append(trips, trip)
	})
	assert.NoError(t, bed.engine.ActivateAll())
	bed.sensors[5].Set(450)

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	assert.True(t, bed.engine.SafetyTriggered())
	assert.Empty(t, bed.engine.ActiveChannels())
	for _, relay := range bed.relays {
		assert.True(t, relay.High())
	}
	assert.Len(t, trips, 1)
	assert.Equal(t, 5, trips[0].Channel)
	assert.Equal(t, 135.0, trips[0].Temperature)

	system := bed.engine.Board().System()
	assert.True(t, system.SafetyTriggered)
	assert.NotNil(t, system.Trip)
}

func TestActivateWhileLatched(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	bed.sensors[0].Set(450)
	bed.engine.Cycle(context.Background())

	// WHEN
	err := bed.engine.Activate(4)

	// THEN
	assert.ErrorIs(t, err, actuator.ErrSafetyLatched)
	assert.True(t, bed.relays[4].High())
	assert.ErrorIs(t, bed.engine.ActivateAll(), actuator.ErrSafetyLatched)
}

func TestResetSafetyThenActivate(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	bed.sensors[0].Set(450)
	bed.engine.Cycle(context.Background())
	bed.sensors[0].Set(700)

	// WHEN
	bed.engine.ResetSafety()

	// THEN
	assert.False(t, bed.engine.SafetyTriggered())
	assert.Empty(t, bed.engine.ActiveChannels())
	assert.NoError(t, bed.engine.Activate(4))

	// WHEN
	bed.advance()
	bed.engine.Cycle(context.Background())

	// THEN
	assert.False(t, bed.engine.SafetyTriggered())
	assert.Equal(t, []int{4}, bed.engine.ActiveChannels())
}

func TestCycleAggregateOutputDefault(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	for _, sensor := range bed.sensors {
		sensor.Set(0)
	}

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	for id, output := range bed.outputs {
		assert.Equal(t, 242, output.Duty(), "section %d", id)
	}
	status, _ := bed.engine.Board().Section(3)
	assert.Equal(t, "default", status.AverageSource)
	assert.Equal(t, 242, status.Output)
	channel, _ := bed.engine.Board().Channel(9)
	assert.NotEmpty(t, channel.Fault)
}

func TestCycleAggregateOutputUsesAllWhenNoneActive(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	bed.sensors[0].Set(600)
	bed.sensors[1].Set(600)
	bed.sensors[2].Set(800)
	bed.sensors[3].Set(800)

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	// average 60°C -> 255 - 40/100*255 = 153
	assert.Equal(t, 153, bed.outputs[1].Duty())
	status, _ := bed.engine.Board().Section(1)
	assert.Equal(t, "all", status.AverageSource)
}

func TestCycleAggregateOutputWhileLatched(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)
	bed.sensors[15].Set(450)

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	assert.True(t, bed.engine.SafetyTriggered())
	assert.NotEqual(t, -1, bed.outputs[4].Duty())
}

func TestCycleReadsSetpoints(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, func(config *configuration.Configuration) {
		config.Signal.Enabled = true
	})
	bed.setpoints[2].Set(51 * time.Microsecond)

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	target, err := bed.engine.Target(2)
	assert.NoError(t, err)
	assert.InDelta(t, 40.0, target, 0.0001)

	// WHEN
	bed.setpoints[2].Set(0)
	bed.advance()
	bed.engine.Cycle(context.Background())

	// THEN
	target, _ = bed.engine.Target(2)
	assert.InDelta(t, 40.0, target, 0.0001)
}

func TestCycleKeepsTargetOnOutOfRangeSetpoint(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, func(config *configuration.Configuration) {
		config.Signal.Enabled = true
		config.Sections[0].Target = 55
	})
	bed.setpoints[1].Set(1000 * time.Microsecond)

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	target, _ := bed.engine.Target(1)
	assert.Equal(t, 55.0, target)
}

func TestSetSignalRange(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)

	// WHEN
	err := bed.engine.SetSignalRange(signal.Range{PwmMin: 100, PwmMax: 50, TempMin: 0, TempMax: 100})

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 255, bed.engine.SignalRange().PwmMax)

	// WHEN
	err = bed.engine.SetSignalRange(signal.Range{PwmMin: 1000, PwmMax: 2000, TempMin: 0, TempMax: 100})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 2000, bed.engine.SignalRange().PwmMax)
}

func TestUnknownSection(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, nil)

	// WHEN
	err := bed.engine.SetTarget(5, 60)

	// THEN
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestCyclePid(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, func(config *configuration.Configuration) {
		config.Control.Strategy = configuration.StrategyPid
		config.Control.Pid = configuration.PidConfig{P: 0.5, Threshold: 0.5}
	})
	assert.NoError(t, bed.engine.SetTarget(1, 65))
	assert.NoError(t, bed.engine.Activate(0))
	assert.NoError(t, bed.engine.Activate(1))
	bed.sensors[1].Set(600)

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	// channel 1: 60°C, error 5 -> 1 -> on; channel 2: 90°C -> 0 -> off
	assert.False(t, bed.relays[0].High())
	assert.True(t, bed.relays[1].High())
	assert.Equal(t, "pid", bed.engine.Board().System().Strategy)
}

func createPidTestBed(t *testing.T) *testBed {
	bed := createTestBed(t, func(config *configuration.Configuration) {
		config.Control.Strategy = configuration.StrategyPid
		config.Control.Pid = configuration.PidConfig{P: 0.1, I: 0.01, Threshold: 0.5}
	})
	assert.NoError(t, bed.engine.SetTarget(1, 61))
	assert.NoError(t, bed.engine.Activate(0))
	for i := 0; i < 2; i++ {
		bed.advance()
		bed.engine.Cycle(context.Background())
	}
	// 60°C against 61°C stays below the threshold
	assert.True(t, bed.relays[0].High())
	return bed
}

func TestCyclePidAfterResetSafety(t *testing.T) {
	// GIVEN
	bed := createPidTestBed(t)
	bed.sensors[5].Set(450)
	bed.advance()
	bed.engine.Cycle(context.Background())
	assert.True(t, bed.engine.SafetyTriggered())

	bed.now = bed.now.Add(30 * time.Minute)
	bed.sensors[5].Set(700)

	// WHEN
	bed.engine.ResetSafety()
	assert.NoError(t, bed.engine.Activate(0))
	bed.advance()
	bed.engine.Cycle(context.Background())

	// THEN
	assert.False(t, bed.engine.SafetyTriggered())
	assert.Equal(t, []int{0}, bed.engine.ActiveChannels())
	assert.True(t, bed.relays[0].High())
}

func TestCyclePidAfterReactivation(t *testing.T) {
	// GIVEN
	bed := createPidTestBed(t)
	assert.NoError(t, bed.engine.Deactivate(0))
	bed.now = bed.now.Add(30 * time.Minute)

	// WHEN
	assert.NoError(t, bed.engine.Activate(0))
	bed.advance()
	bed.engine.Cycle(context.Background())

	// THEN
	assert.True(t, bed.relays[0].High())
}

func TestCycleSamplesEveryChannelOnce(t *testing.T) {
	for _, interval := range []time.Duration{0, time.Second} {
		// GIVEN
		bed := createTestBed(t, func(config *configuration.Configuration) {
			config.SampleInterval = interval
		})
		assert.NoError(t, bed.engine.ActivateAll())
		bed.advance()
		before := make([]int, len(bed.sensors))
		for i, sensor := range bed.sensors {
			before[i] = sensor.Reads()
		}

		// WHEN
		bed.engine.Cycle(context.Background())

		// THEN
		for i, sensor := range bed.sensors {
			assert.Equal(t, before[i]+1, sensor.Reads(), "channel %d, interval %s", i+1, interval)
		}
	}
}

func TestCycleSafetyAndControlSeeTheSameSample(t *testing.T) {
	// GIVEN
	bed := createTestBed(t, func(config *configuration.Configuration) {
		config.SampleInterval = 0
	})
	assert.NoError(t, bed.engine.ActivateAll())
	bed.sensors[0].Set(450)

	// WHEN
	bed.engine.Cycle(context.Background())

	// THEN
	channel, ok := bed.engine.Board().Channel(1)
	assert.True(t, ok)
	assert.Equal(t, 135.0, channel.Temperature)
	assert.True(t, bed.engine.SafetyTriggered())
	assert.Equal(t, 1, bed.sensors[0].Reads())
}

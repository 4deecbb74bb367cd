package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultRange = Range{PwmMin: 0, PwmMax: 255, TempMin: 20, TempMax: 120}

func TestValidate(t *testing.T) {
	assert.NoError(t, defaultRange.Validate())
	assert.Error(t, Range{PwmMin: 255, PwmMax: 0, TempMin: 20, TempMax: 120}.Validate())
	assert.Error(t, Range{PwmMin: 0, PwmMax: 255, TempMin: 120, TempMax: 120}.Validate())
}

func TestToTemperature(t *testing.T) {
	assert.Equal(t, 20.0, defaultRange.ToTemperature(0))
	assert.Equal(t, 120.0, defaultRange.ToTemperature(255))
	assert.InDelta(t, 70.0, defaultRange.ToTemperature(127.5), 0.0001)
}

func TestFromTemperatureIsInverted(t *testing.T) {
	assert.Equal(t, 255, defaultRange.FromTemperature(20))
	assert.Equal(t, 0, defaultRange.FromTemperature(120))
	// 25°C -> 255 - 5/100*255 = 242.25
	assert.Equal(t, 242, defaultRange.FromTemperature(25))
}

func TestFromTemperatureClamped(t *testing.T) {
	assert.Equal(t, 255, defaultRange.FromTemperature(-10))
	assert.Equal(t, 0, defaultRange.FromTemperature(300))
}

func TestContains(t *testing.T) {
	assert.True(t, defaultRange.Contains(0))
	assert.True(t, defaultRange.Contains(255))
	assert.False(t, defaultRange.Contains(255.5))
	assert.False(t, defaultRange.Contains(-1))
}

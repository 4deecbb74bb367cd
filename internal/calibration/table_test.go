package calibration

import (
	"testing"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func createDefaultTable(t *testing.T) *Table {
	table, err := FromConfig(configuration.DefaultCalibration)
	assert.NoError(t, err)
	return table
}

func TestNewTableTooFewPoints(t *testing.T) {
	// WHEN
	_, err := NewTable([]Point{{Raw: 1, Temp: 300}})

	// THEN
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestNewTableDuplicateRaw(t *testing.T) {
	// WHEN
	_, err := NewTable([]Point{{Raw: 1, Temp: 300}, {Raw: 1, Temp: 250}})

	// THEN
	assert.ErrorIs(t, err, ErrNotIncreasing)
}

func TestNewTableDecreasingRaw(t *testing.T) {
	// WHEN
	_, err := NewTable([]Point{{Raw: 500, Temp: 120}, {Raw: 400, Temp: 150}})

	// THEN
	assert.ErrorIs(t, err, ErrNotIncreasing)
}

func TestTemperatureExactPoints(t *testing.T) {
	// GIVEN
	table := createDefaultTable(t)

	for _, point := range configuration.DefaultCalibration {
		// WHEN
		temp := table.Temperature(point.Raw)

		// THEN
		assert.Equal(t, point.Temp, temp)
	}
}

func TestTemperatureInterpolated(t *testing.T) {
	// GIVEN
	table := createDefaultTable(t)

	// WHEN
	temp := table.Temperature(250)

	// THEN
	assert.InDelta(t, 225.0, temp, 0.0001)
	assert.InDelta(t, 75.0, table.Temperature(650), 0.0001)
	assert.InDelta(t, 45.0, table.Temperature(750), 0.0001)
}

func TestTemperatureMonotone(t *testing.T) {
	// GIVEN
	table := createDefaultTable(t)

	// WHEN
	last := table.Temperature(1)
	for raw := 2; raw <= 1023; raw++ {
		temp := table.Temperature(raw)

		// THEN
		assert.LessOrEqual(t, temp, last, "raw %d", raw)
		last = temp
	}
}

func TestTemperatureBeyondTableUsesOuterPairs(t *testing.T) {
	// GIVEN
	table, err := NewTable([]Point{{Raw: 100, Temp: 100}, {Raw: 200, Temp: 50}, {Raw: 300, Temp: 0}})
	assert.NoError(t, err)

	// THEN
	assert.InDelta(t, 150.0, table.Temperature(0), 0.0001)
	assert.InDelta(t, -50.0, table.Temperature(400), 0.0001)
}

func TestPointsIsACopy(t *testing.T) {
	// GIVEN
	table := createDefaultTable(t)

	// WHEN
	points := table.Points()
	points[0].Temp = 0

	// THEN
	assert.Equal(t, 300.0, table.Temperature(1))
}

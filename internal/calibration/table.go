// Package calibration maps raw thermistor samples to temperatures.
package calibration

import (
	"errors"
	"fmt"

	"github.com/markusressel/bed2go/internal/configuration"
)

var (
	ErrTooFewPoints  = errors.New("at least 2 calibration points are required")
	ErrNotIncreasing = errors.New("calibration raw values must be strictly increasing")
)

// Point is a single raw sample with its known temperature in °C
type Point struct {
	Raw  int
	Temp float64
}

// Table is an immutable calibration curve, ordered by raw value
type Table struct {
	points []Point
}

func NewTable(points []Point) (*Table, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	for i := 1; i < len(points); i++ {
		if points[i].Raw <= points[i-1].Raw {
			return nil, fmt.Errorf("%w: found %d after %d", ErrNotIncreasing, points[i].Raw, points[i-1].Raw)
		}
	}
	return &Table{points: append([]Point{}, points...)}, nil
}

// FromConfig creates a table from the calibration section of the configuration
func FromConfig(config []configuration.CalibrationPointConfig) (*Table, error) {
	points := make([]Point, len(config))
	for i, p := range config {
		points[i] = Point{Raw: p.Raw, Temp: p.Temp}
	}
	return NewTable(points)
}

// Temperature interpolates the temperature of the given raw sample.
// Samples outside of the table are extrapolated using the first or last pair of points.
func (t *Table) Temperature(raw int) float64 {
	i := 1
	for i < len(t.points)-1 && t.points[i].Raw < raw {
		i++
	}
	low := t.points[i-1]
	high := t.points[i]

	if raw == low.Raw {
		return low.Temp
	}
	if raw == high.Raw {
		return high.Temp
	}
	return low.Temp + float64(raw-low.Raw)*(high.Temp-low.Temp)/float64(high.Raw-low.Raw)
}

// Points returns a copy of the calibration points
func (t *Table) Points() []Point {
	return append([]Point{}, t.points...)
}

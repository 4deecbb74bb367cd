package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvg(t *testing.T) {
	// GIVEN
	values := []float64{10, 20, 30, 40}

	// WHEN
	result := Avg(values)

	// THEN
	assert.Equal(t, 25.0, result)
}

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}

func TestLerp(t *testing.T) {
	expectedInputOutput := map[float64]float64{
		0:   0,
		50:  127.5,
		100: 255,
		150: 382.5,
	}

	for input, output := range expectedInputOutput {
		// WHEN
		result := Lerp(input, 0, 100, 0, 255)

		// THEN
		assert.Equal(t, output, result)
	}
}

func TestLerp_InvertedOutput(t *testing.T) {
	// WHEN
	result := Lerp(25, 0, 100, 255, 55)

	// THEN
	assert.Equal(t, 205.0, result)
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, 1.0, Coerce(7.5, 0, 1))
	assert.Equal(t, 0.0, Coerce(-3.0, 0, 1))
	assert.Equal(t, 0.25, Coerce(0.25, 0, 1))
	assert.Equal(t, 255, Coerce(300, 0, 255))
}

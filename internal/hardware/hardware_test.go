package hardware

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestFileAnalogInput(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	err := os.WriteFile(path, []byte("512\n"), 0o644)
	assert.NoError(t, err)
	input := &FileAnalogInput{Path: path}

	// WHEN
	raw, err := input.ReadRaw()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 512, raw)
}

func TestFileAnalogInputMissing(t *testing.T) {
	// GIVEN
	input := &FileAnalogInput{Path: filepath.Join(t.TempDir(), "missing")}

	// WHEN
	_, err := input.ReadRaw()

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileDigitalOutput(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	output := &FileDigitalOutput{Path: path}

	// WHEN
	err := output.Write(true)

	// THEN
	assert.NoError(t, err)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "1", string(content))

	// WHEN
	err = output.Write(false)

	// THEN
	assert.NoError(t, err)
	content, _ = os.ReadFile(path)
	assert.Equal(t, "0", string(content))
}

func TestFilePulseInput(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "capture")
	err := os.WriteFile(path, []byte("1500"), 0o644)
	assert.NoError(t, err)
	input := &FilePulseInput{Path: path}

	// WHEN
	width, err := input.MeasurePulse(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1500*time.Microsecond, width)
}

func TestFilePulseInputNoPulse(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "capture")
	err := os.WriteFile(path, []byte("0"), 0o644)
	assert.NoError(t, err)
	input := &FilePulseInput{Path: path}

	// WHEN
	_, err = input.MeasurePulse(context.Background())

	// THEN
	assert.ErrorIs(t, err, ErrNoPulse)
}

func TestFilePwmOutputAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "duty_cycle")
	output := &FilePwmOutput{Path: path, Atomic: true}

	// WHEN
	err := output.SetDuty(128)

	// THEN
	assert.NoError(t, err)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "128", string(content))
}

func TestVirtualAnalogInputFail(t *testing.T) {
	// GIVEN
	input := NewVirtualAnalogInput(100)
	failure := errors.New("adc offline")

	// WHEN
	input.Fail(failure)
	_, err := input.ReadRaw()

	// THEN
	assert.ErrorIs(t, err, failure)

	// WHEN
	input.Set(200)
	raw, err := input.ReadRaw()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 200, raw)
	assert.Equal(t, 2, input.Reads())
}

func TestVirtualPulseInputTimesOut(t *testing.T) {
	// GIVEN
	input := NewVirtualPulseInput(0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// WHEN
	_, err := input.MeasurePulse(ctx)

	// THEN
	assert.ErrorIs(t, err, ErrNoPulse)
}

func TestNewAnalogInputVirtual(t *testing.T) {
	// GIVEN
	config := configuration.IoConfig{Virtual: &configuration.VirtualIoConfig{Value: 700}}

	// WHEN
	input, err := NewAnalogInput(config)

	// THEN
	assert.NoError(t, err)
	raw, err := input.ReadRaw()
	assert.NoError(t, err)
	assert.Equal(t, 700, raw)
}

func TestNewDigitalOutputVirtualIdleLevel(t *testing.T) {
	// GIVEN
	config := configuration.IoConfig{Virtual: &configuration.VirtualIoConfig{}}

	// WHEN
	output, err := NewDigitalOutput(config, true)

	// THEN
	assert.NoError(t, err)
	assert.True(t, output.(*VirtualDigitalOutput).High())
}

func TestNewPulseInputVirtual(t *testing.T) {
	// GIVEN
	config := configuration.IoConfig{Virtual: &configuration.VirtualIoConfig{Value: 20000}}

	// WHEN
	input, err := NewPulseInput(config)

	// THEN
	assert.NoError(t, err)
	width, err := input.MeasurePulse(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, width)
}

func TestNewPwmOutputFile(t *testing.T) {
	// GIVEN
	config := configuration.IoConfig{File: &configuration.FileIoConfig{Path: "/sys/class/pwm/pwmchip0/pwm0/duty_cycle"}}

	// WHEN
	output, err := NewPwmOutput(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &FilePwmOutput{}, output)
}

func TestNewIoMissing(t *testing.T) {
	// WHEN
	_, err := NewAnalogInput(configuration.IoConfig{})

	// THEN
	assert.Error(t, err)
}

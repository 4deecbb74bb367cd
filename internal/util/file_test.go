package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "in_voltage0_raw")
	err := os.WriteFile(filePath, []byte("512\n"), 0644)
	assert.NoError(t, err)

	// WHEN
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 512, value)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "empty")
	err := os.WriteFile(filePath, []byte(""), 0644)
	assert.NoError(t, err)

	// WHEN
	_, err = ReadIntFromFile(filePath)

	// THEN
	assert.Error(t, err)
}

func TestReadIntFromFile_Missing(t *testing.T) {
	// WHEN
	_, err := ReadIntFromFile(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteIntToFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")

	// WHEN
	err := WriteIntToFile(1, filePath)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestWriteIntToFileAtomic_ReplacesValue(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "duty_cycle")
	err := WriteIntToFileAtomic(200, filePath)
	assert.NoError(t, err)

	// WHEN
	err = WriteIntToFileAtomic(55, filePath)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, 55, value)
}

func TestFileHasPermissionsOthersHaveWritePermission(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "script.sh")
	err := os.WriteFile(filePath, []byte("#!/bin/sh\n"), 0o700)
	assert.NoError(t, err)
	err = os.Chmod(filePath, 0o777)
	assert.NoError(t, err)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.False(t, result)
	assert.EqualError(t, err, "others have write permission")
}

func TestFileHasPermissionsFileMissing(t *testing.T) {
	// WHEN
	result, err := CheckFilePermissionsForExecution(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}

package util

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by bed2go.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	file, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}

	otherWrite := info.Mode() & (os.FileMode(0o002))
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		groupWrite := info.Mode() & (os.FileMode(0o020))
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	return true, nil
}

// ExpandPath resolves a leading "~" to the home directory of the current user
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

func ReadIntFromFile(path string) (value int, err error) {
	path, err = ExpandPath(path)
	if err != nil {
		return -1, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	return strconv.Atoi(text)
}

// WriteIntToFile writes a single integer to the given path, which is expected to
// be a device attribute (e.g. a sysfs gpio "value" file) that cannot be replaced atomically.
func WriteIntToFile(value int, path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(value)), 0644)
}

// WriteIntToFileAtomic writes a single integer to a regular file, replacing it atomically
// so concurrent readers never observe a partially written value.
func WriteIntToFileAtomic(value int, path string) error {
	return WriteFileAtomic(path, []byte(strconv.Itoa(value)))
}

func WriteFileAtomic(path string, data []byte) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

func resolvePath(path string) (string, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// the file will be created
			return path, nil
		}
		return "", err
	}
	return evaluatedPath, nil
}

package configuration

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// enumHookFunc returns a mapstructure decode hook that normalizes the spelling
// of enum-like string values, so "activeLow", "ActiveLow" and "active_low" all work.
func enumHookFunc() mapstructure.DecodeHookFuncType {
	polarityType := reflect.TypeOf(RelayPolarity(""))
	strategyType := reflect.TypeOf(ControlStrategy(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		value := reflect.ValueOf(data).String()
		switch t {
		case polarityType:
			return RelayPolarity(normalizeEnum(value)), nil
		case strategyType:
			return ControlStrategy(normalizeEnum(value)), nil
		}
		return data, nil
	}
}

func normalizeEnum(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, "_", "")
	return strings.ReplaceAll(value, "-", "")
}

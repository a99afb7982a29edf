package report

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
)

const (
	TextFormat = "text"
	JsonFormat = "json"
)

var (
	ConsoleFormatsSet = map[string]any{
		TextFormat: nil,
		JsonFormat: nil,
	}
	ConsoleFormats = slices.Collect(maps.Keys(ConsoleFormatsSet))
)

func ValidateConsoleFormat(format string) error {
	if _, ok := ConsoleFormatsSet[format]; !ok {
		return errors.Errorf("unknown report format: %s", format)
	}

	return nil
}

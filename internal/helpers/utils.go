package helpers

import (
	"maps"
	"strings"
)

// MergeHeaders returns a copy of headers with the "Name: value" header from
// extra added on top. A malformed extra header is ignored.
func MergeHeaders(headers map[string]string, extra string) map[string]string {
	merged := make(map[string]string, len(headers)+1)
	maps.Copy(merged, headers)

	name, value, ok := strings.Cut(extra, ":")
	name = strings.TrimSpace(name)
	if ok && name != "" {
		merged[name] = strings.TrimSpace(value)
	}

	return merged
}

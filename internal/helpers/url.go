package helpers

import (
	"strings"
)

// JoinURLPath appends a raw, already encoded request path to the base URL.
// The path is not cleaned or re-encoded, so dot segments, percent escapes and
// backslashes are sent as written.
func JoinURLPath(baseURL string, urlPath string) string {
	baseURL = strings.TrimRight(baseURL, "/")

	if urlPath == "" {
		return baseURL + "/"
	}

	if !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + urlPath
	}

	return baseURL + urlPath
}

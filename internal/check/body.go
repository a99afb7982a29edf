package check

import (
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// decodeText converts a response body to UTF-8 text using the charset from
// the Content-Type header, or a sniffed one when none is declared.
func decodeText(body []byte, contentType string) string {
	enc, _, _ := charset.DetermineEncoding(body, contentType)

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return string(body)
	}

	return string(decoded)
}

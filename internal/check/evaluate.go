package check

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/wallarm/httpcheck/internal/scanner/types"
)

// EvaluateStatic runs the static resource checks in order: status, body,
// Content-Type, Content-Length, required headers, Last-Modified.
func EvaluateStatic(resp types.Response, artifact Artifact) Outcome {
	if code := resp.GetStatusCode(); code != http.StatusOK {
		return Failed(ReasonStatus, "expected %d, got %d", http.StatusOK, code)
	}

	content := resp.GetContent()
	if !bytes.Equal(content, artifact.Content) {
		return Failed(ReasonContent, "content mismatch: expected %d bytes, got %d bytes",
			len(artifact.Content), len(content))
	}

	headers := resp.GetHeaders()

	// exact match, parameters like charset are not stripped
	if contentType := headers.Get("Content-Type"); contentType != artifact.ContentType {
		return Failed(ReasonContentType, "wrong Content-Type: expected '%s', got '%s'",
			artifact.ContentType, contentType)
	}

	expectedLength := len(artifact.Content)
	rawLength, ok := headerValue(headers, "Content-Length")
	if !ok {
		return Failed(ReasonContentLength, "wrong Content-Length: expected %d, got none", expectedLength)
	}
	length, err := strconv.Atoi(strings.TrimSpace(rawLength))
	if err != nil {
		return Failed(ReasonContentLength, "wrong Content-Length: expected %d, got '%s'", expectedLength, rawLength)
	}
	if length != expectedLength {
		return Failed(ReasonContentLength, "wrong Content-Length: expected %d, got %d", expectedLength, length)
	}

	for _, header := range requiredStaticHeaders {
		if _, ok := headerValue(headers, header); !ok {
			return Failed(ReasonMissingHeader, "missing required header: %s", header)
		}
	}

	if _, ok := headerValue(headers, "Last-Modified"); !ok {
		return Failed(ReasonMissingHeader, "missing Last-Modified header")
	}

	return Passed()
}

// EvaluateDynamic checks status 200, then every required substring of the
// decoded body, then every required header.
func EvaluateDynamic(resp types.Response, requiredSubstrings []string, requiredHeaders []HeaderExpectation) Outcome {
	if code := resp.GetStatusCode(); code != http.StatusOK {
		return Failed(ReasonStatus, "expected %d, got %d", http.StatusOK, code)
	}

	headers := resp.GetHeaders()

	text := decodeText(resp.GetContent(), headers.Get("Content-Type"))
	for _, s := range requiredSubstrings {
		if !strings.Contains(text, s) {
			return Failed(ReasonMissingSubstring, "missing expected '%s' in output", s)
		}
	}

	for _, expected := range requiredHeaders {
		value, ok := headerValue(headers, expected.Name)
		if !ok {
			return Failed(ReasonMissingHeader, "missing header: %s", expected.Name)
		}
		if expected.Value != nil && value != *expected.Value {
			return Failed(ReasonHeaderValue, "wrong %s value: expected '%s', got '%s'",
				expected.Name, *expected.Value, value)
		}
	}

	return Passed()
}

// EvaluateRejected passes for any status outside 2xx. A non-empty
// allowedCodes narrows the accepted statuses further.
func EvaluateRejected(resp types.Response, allowedCodes []int) Outcome {
	code := resp.GetStatusCode()

	if code >= 200 && code < 300 {
		return Failed(ReasonSecurity, "security issue: request unexpectedly succeeded (got %d)", code)
	}

	if len(allowedCodes) > 0 && !slices.Contains(allowedCodes, code) {
		return Failed(ReasonStatus, "unexpected rejection status: %d (expected one of %s)",
			code, formatCodes(allowedCodes))
	}

	return Passed()
}

// EvaluateStatus passes when the status is one of allowedCodes.
func EvaluateStatus(resp types.Response, allowedCodes []int) Outcome {
	code := resp.GetStatusCode()

	if slices.Contains(allowedCodes, code) {
		return Passed()
	}

	if len(allowedCodes) == 1 {
		return Failed(ReasonStatus, "expected %d, got %d", allowedCodes[0], code)
	}

	return Failed(ReasonStatus, "unexpected status: %d (expected one of %s)", code, formatCodes(allowedCodes))
}

func headerValue(headers http.Header, name string) (string, bool) {
	values, ok := headers[http.CanonicalHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func formatCodes(codes []int) string {
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, fmt.Sprintf("%d", c))
	}
	return strings.Join(parts, ", ")
}

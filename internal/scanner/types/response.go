package types

import (
	"net/http"
)

var _ Response = (*ResponseMeta)(nil)

// Response interface contains general methods for retrieving response info.
type Response interface {
	// GetStatusCode returns response status code.
	GetStatusCode() int

	// GetHeaders returns response headers.
	GetHeaders() http.Header

	// GetContent returns response content body.
	GetContent() []byte
}

// ResponseMeta is a fully read HTTP response. Both HTTP clients return it,
// so checks never touch a live connection.
type ResponseMeta struct {
	StatusCode int
	Headers    http.Header
	Content    []byte
}

// NewResponseMeta copies status, headers and the already read body of resp.
func NewResponseMeta(resp *http.Response, body []byte) *ResponseMeta {
	headers := resp.Header.Clone()
	if headers == nil {
		headers = http.Header{}
	}

	// net/http strips "Connection: close" from HTTP/1.1 responses after
	// setting resp.Close, put it back so header checks see what was sent.
	if resp.Close && resp.ProtoAtLeast(1, 1) && headers.Get("Connection") == "" {
		headers.Set("Connection", "close")
	}

	return &ResponseMeta{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Content:    body,
	}
}

func (r *ResponseMeta) GetStatusCode() int {
	return r.StatusCode
}

func (r *ResponseMeta) GetHeaders() http.Header {
	if r.Headers == nil {
		return http.Header{}
	}
	return r.Headers
}

func (r *ResponseMeta) GetContent() []byte {
	return r.Content
}

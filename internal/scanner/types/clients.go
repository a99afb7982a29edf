package types

// HTTPClientType represents the type of HTTP client.
type HTTPClientType int

// Enumeration of available HTTPClientType values.
const (
	// GoHTTPClient indicates that the standard Go HTTP client is used.
	GoHTTPClient HTTPClientType = iota

	// RestyHTTPClient indicates that the go-resty client is used.
	RestyHTTPClient
)

const (
	GoHTTPClientName = "gohttp"
	RestyClientName  = "resty"
)

// String returns the name used for the type on the command line.
func (t HTTPClientType) String() string {
	switch t {
	case RestyHTTPClient:
		return RestyClientName
	default:
		return GoHTTPClientName
	}
}

// ParseHTTPClientType maps a command line name to a client type.
func ParseHTTPClientType(name string) (HTTPClientType, bool) {
	switch name {
	case GoHTTPClientName:
		return GoHTTPClient, true
	case RestyClientName:
		return RestyHTTPClient, true
	}
	return GoHTTPClient, false
}

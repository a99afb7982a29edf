package check

import (
	"io"
	"syscall"

	"github.com/pkg/errors"
)

// IsConnectionRejected reports whether err means the server actively turned
// the connection down: refused, reset or closed before a response. Timeouts
// and name resolution failures are not rejections.
func IsConnectionRejected(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

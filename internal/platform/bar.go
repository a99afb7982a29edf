package platform

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// NewProgressBar returns a bar counting executed test cases. It writes to w,
// which must not be the stream the test results are printed to.
func NewProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Server checks"),
		progressbar.OptionSetItsString("test"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish())
	return bar
}

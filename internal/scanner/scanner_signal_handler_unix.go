//go:build unix

package scanner

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/wallarm/httpcheck/internal/db"
)

// testStatusSignalHandler logs the progress of the run on SIGUSR1.
func (s *Scanner) testStatusSignalHandler(ctx context.Context, requestsCounter *uint64, results *db.DB) (func(), error) {
	userSignal := make(chan os.Signal, 1)
	signal.Notify(userSignal, syscall.SIGUSR1)

	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-userSignal:
				s.logger.
					WithFields(logrus.Fields{
						"sent":  atomic.LoadUint64(requestsCounter),
						"total": results.GetNumberOfAllTestCases(),
					}).Info("Testing status")

			case <-done:
				return

			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		signal.Stop(userSignal)
		close(done)
	}, nil
}

// Package scanner registers test cases and runs them one by one against the
// server under test.
package scanner

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wallarm/httpcheck/internal/check"
	"github.com/wallarm/httpcheck/internal/config"
	"github.com/wallarm/httpcheck/internal/db"
	"github.com/wallarm/httpcheck/internal/helpers"
	"github.com/wallarm/httpcheck/internal/platform"
	"github.com/wallarm/httpcheck/internal/scanner/clients"
)

// ErrServerUnreachable is returned by RunAll when the liveness probe fails.
// No test case is executed in that case.
var ErrServerUnreachable = errors.New("server unreachable")

// Action performs one HTTP interaction. A returned error or a panic is
// reported as a failed outcome of the test case.
type Action func(ctx context.Context) (check.Outcome, error)

type TestCase struct {
	Group  string
	Name   string
	Action Action
}

// Reporter receives outcomes as soon as they are produced.
type Reporter interface {
	Section(group string)
	Report(outcome check.Outcome)
}

type Scanner struct {
	logger   *logrus.Logger
	cfg      *config.Config
	client   clients.HTTPClient
	reporter Reporter
	filter   *Filter

	tests   []TestCase
	results *db.DB
}

func New(
	logger *logrus.Logger,
	cfg *config.Config,
	client clients.HTTPClient,
	reporter Reporter,
) (*Scanner, error) {
	filter, err := NewFilter(cfg.Run, cfg.Skip)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't compile test filters")
	}
	if desc := filter.Description(); desc != "" {
		logger.WithField("filter", desc).Info("Test filter applied")
	}

	return &Scanner{
		logger:   logger,
		cfg:      cfg,
		client:   client,
		reporter: reporter,
		filter:   filter,
	}, nil
}

// Register appends a test case. Cases excluded by the --run and --skip
// filters are dropped here, so every registered case is executed.
func (s *Scanner) Register(group, name string, action Action) {
	if !s.filter.Match(testID(group, name)) {
		s.logger.WithFields(logrus.Fields{
			"group": group,
			"test":  name,
		}).Debug("test skipped by filter")
		return
	}

	s.tests = append(s.tests, TestCase{
		Group:  group,
		Name:   name,
		Action: action,
	})
}

// Tests returns the registered test cases in registration order.
func (s *Scanner) Tests() []TestCase {
	tests := make([]TestCase, len(s.tests))
	copy(tests, s.tests)
	return tests
}

// Outcomes returns the outcomes of the last run in report order.
func (s *Scanner) Outcomes() []check.Outcome {
	if s.results == nil {
		return nil
	}
	return s.results.Outcomes()
}

// CheckServerAvailability sends one request to the server root. Any HTTP
// response means the server is up. A cancelled ctx is returned as is.
func (s *Scanner) CheckServerAvailability(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	defer cancel()

	_, err := s.client.Get(probeCtx, helpers.JoinURLPath(s.cfg.URL, "/"))
	if err != nil {
		// an interrupted run is not an unreachable server
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Wrapf(ErrServerUnreachable, "%s: %v", s.cfg.URL, err)
	}

	return nil
}

// RunAll probes the server and then executes every registered test case in
// registration order. Cancelling ctx stops the run between test cases.
func (s *Scanner) RunAll(ctx context.Context) (*db.Summary, error) {
	if err := s.CheckServerAvailability(ctx); err != nil {
		return nil, err
	}
	s.logger.WithField("url", s.cfg.URL).Info("Server is responding")

	results := db.NewDB(uint(len(s.tests)))
	s.results = results

	var requestsCounter uint64

	stopStatus, err := s.testStatusSignalHandler(ctx, &requestsCounter, results)
	if err != nil {
		s.logger.WithError(err).Warn("couldn't set up testing status handler")
	} else {
		defer stopStatus()
	}

	var bar interface {
		Add(int) error
		Finish() error
	}
	if s.cfg.ProgressBar {
		pb := platform.NewProgressBar(len(s.tests), os.Stderr)
		bar = pb
		defer pb.Finish()
	}

	s.logger.WithField("tests", len(s.tests)).Info("Testing started")
	start := time.Now()
	defer func() {
		s.logger.WithFields(logrus.Fields{
			"executed": results.NumberOfRecorded(),
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("Testing finished")
	}()

	currentGroup := ""
	for i, tc := range s.tests {
		if err := ctx.Err(); err != nil {
			s.logger.WithField("executed", i).Warn("testing interrupted")
			return results.GetSummary(), err
		}

		if i == 0 || tc.Group != currentGroup {
			currentGroup = tc.Group
			s.reporter.Section(currentGroup)
		}

		outcome := s.runTest(ctx, tc)
		atomic.AddUint64(&requestsCounter, 1)

		results.Record(outcome)
		s.reporter.Report(outcome)

		if bar != nil {
			bar.Add(1)
		}
	}

	return results.GetSummary(), nil
}

func (s *Scanner) runTest(ctx context.Context, tc TestCase) (outcome check.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("test", tc.Name).WithField("panic", r).Debug("test panicked")
			outcome = check.Failed(check.ReasonTestError, "test error: %v", r)
		}

		outcome.Name = tc.Name
		outcome.Group = tc.Group
	}()

	o, err := tc.Action(ctx)
	if err != nil {
		return check.Failed(check.ReasonTestError, "test error: %v", err)
	}

	switch o.Verdict {
	case check.Pass:
		o.Reason = ""
		o.Kind = check.ReasonNone
	case check.Fail:
		if o.Reason == "" {
			o.Reason = "failed without a reason"
		}
	default:
		return check.Failed(check.ReasonTestError, "test error: unknown verdict %q", o.Verdict)
	}

	return o
}

func testID(group, name string) string {
	return group + "/" + name
}

package scanner

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallarm/httpcheck/internal/check"
	"github.com/wallarm/httpcheck/internal/config"
	"github.com/wallarm/httpcheck/internal/scanner/clients/gohttp"
)

type recordingReporter struct {
	sections []string
	outcomes []check.Outcome
}

func (r *recordingReporter) Section(group string) {
	r.sections = append(r.sections, group)
}

func (r *recordingReporter) Report(outcome check.Outcome) {
	r.outcomes = append(r.outcomes, outcome)
}

func newTestScanner(t *testing.T, url string, run, skip []string) (*Scanner, *recordingReporter) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		URL:          url,
		ProbeTimeout: time.Second,
		Run:          run,
		Skip:         skip,
	}

	client, err := gohttp.NewClient(cfg)
	require.NoError(t, err)

	reporter := &recordingReporter{}

	s, err := New(logger, cfg, client, reporter)
	require.NoError(t, err)

	return s, reporter
}

func passing(calls *[]string, name string) Action {
	return func(ctx context.Context) (check.Outcome, error) {
		*calls = append(*calls, name)
		return check.Passed(), nil
	}
}

func TestRunAllOrderAndContainment(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s, reporter := newTestScanner(t, srv.URL, nil, nil)

	var calls []string
	s.Register("HTML Files", "first", passing(&calls, "first"))
	s.Register("HTML Files", "panics", func(ctx context.Context) (check.Outcome, error) {
		calls = append(calls, "panics")
		var m map[string]int
		m["boom"]++
		return check.Passed(), nil
	})
	s.Register("CGI Scripts", "errors", func(ctx context.Context) (check.Outcome, error) {
		calls = append(calls, "errors")
		return check.Outcome{}, errors.New("broken fixture")
	})
	s.Register("CGI Scripts", "fails", func(ctx context.Context) (check.Outcome, error) {
		calls = append(calls, "fails")
		return check.Failed(check.ReasonStatus, "expected 200, got 500"), nil
	})
	s.Register("HTML Files", "last", passing(&calls, "last"))

	summary, err := s.RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "panics", "errors", "fails", "last"}, calls)
	assert.Equal(t, []string{"HTML Files", "CGI Scripts", "HTML Files"}, reporter.sections)

	require.Len(t, reporter.outcomes, 5)
	for i, name := range calls {
		assert.Equal(t, name, reporter.outcomes[i].Name)
	}

	assert.Equal(t, check.ReasonTestError, reporter.outcomes[1].Kind)
	assert.Contains(t, reporter.outcomes[1].Reason, "test error: ")
	assert.Equal(t, "test error: broken fixture", reporter.outcomes[2].Reason)
	assert.Equal(t, "CGI Scripts", reporter.outcomes[2].Group)

	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 3, summary.Failed)
	assert.False(t, summary.OK())
	assert.Equal(t, []string{
		"panics: " + reporter.outcomes[1].Reason,
		"errors: test error: broken fixture",
		"fails: expected 200, got 500",
	}, summary.Failures)
}

func TestRunAllServerUnreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	lis.Close()

	s, reporter := newTestScanner(t, "http://"+addr, nil, nil)

	var calls []string
	s.Register("HTML Files", "never", passing(&calls, "never"))

	summary, err := s.RunAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrServerUnreachable))
	assert.Nil(t, summary)
	assert.Empty(t, calls)
	assert.Empty(t, reporter.outcomes)
}

func TestRunAllStopsWhenCanceled(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s, reporter := newTestScanner(t, srv.URL, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls []string
	s.Register("Edge Cases", "interrupts", func(ctx context.Context) (check.Outcome, error) {
		calls = append(calls, "interrupts")
		cancel()
		return check.Passed(), nil
	})
	s.Register("Edge Cases", "after", passing(&calls, "after"))

	summary, err := s.RunAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Total())
	assert.Equal(t, []string{"interrupts"}, calls)
	assert.Len(t, reporter.outcomes, 1)
}

func TestRunAllCanceledDuringAvailabilityCheck(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s, reporter := newTestScanner(t, srv.URL, nil, nil)

	var calls []string
	s.Register("Edge Cases", "never", passing(&calls, "never"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := s.RunAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrServerUnreachable))
	assert.Nil(t, summary)
	assert.Empty(t, calls)
	assert.Empty(t, reporter.outcomes)
}

func TestRegisterFilters(t *testing.T) {
	s, _ := newTestScanner(t, "http://localhost:8080", []string{"^Security/"}, []string{"windows"})

	noop := func(ctx context.Context) (check.Outcome, error) { return check.Passed(), nil }

	s.Register("HTML Files", "File: /static/html/index.html", noop)
	s.Register("Security", "Path traversal: /static/../../../etc/passwd", noop)
	s.Register("Security", `Path traversal: /static/..\..\..\windows\system32\config\sam`, noop)

	tests := s.Tests()
	require.Len(t, tests, 1)
	assert.Equal(t, "Path traversal: /static/../../../etc/passwd", tests[0].Name)
}

func TestNewRejectsBadFilter(t *testing.T) {
	_, err := New(logrus.New(), &config.Config{Run: []string{"("}}, nil, &recordingReporter{})
	assert.ErrorContains(t, err, "--run")

	_, err = NewFilter(nil, []string{"["})
	assert.ErrorContains(t, err, "--skip")
}

func TestFilterDescription(t *testing.T) {
	f, err := NewFilter(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, f.Description())
	assert.True(t, f.Match("any/test"))

	f, err = NewFilter([]string{"^CGI"}, []string{"params"})
	require.NoError(t, err)
	assert.Equal(t, `skip any not matching "^CGI"; skip any matching "params"`, f.Description())
	assert.True(t, f.Match("CGI Scripts/CGI hello.cgi"))
	assert.False(t, f.Match("CGI Scripts/CGI params.cgi (headers)"))
	assert.False(t, f.Match("Edge Cases/Root directory request"))
}

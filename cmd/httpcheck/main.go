package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wallarm/httpcheck/internal/catalog"
	"github.com/wallarm/httpcheck/internal/check"
	"github.com/wallarm/httpcheck/internal/config"
	"github.com/wallarm/httpcheck/internal/fixture"
	"github.com/wallarm/httpcheck/internal/report"
	"github.com/wallarm/httpcheck/internal/scanner"
	"github.com/wallarm/httpcheck/internal/scanner/clients"
	"github.com/wallarm/httpcheck/internal/scanner/clients/gohttp"
	"github.com/wallarm/httpcheck/internal/scanner/clients/restyhttp"
	"github.com/wallarm/httpcheck/internal/scanner/types"
	"github.com/wallarm/httpcheck/internal/suite"
	"github.com/wallarm/httpcheck/internal/version"
)

// errChecksFailed means the run completed and at least one check failed.
var errChecksFailed = errors.New("some checks failed")

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		logger.WithField("signal", sig).Info("testing canceled")
		cancel()
	}()

	args, err := parseFlags()
	if err != nil {
		logger.WithError(err).Error("couldn't parse flags")
		os.Exit(1)
	}

	logger.SetLevel(logLevel)
	if logFormat == jsonLogFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if quiet {
		logger.SetOutput(io.Discard)
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.WithError(err).Error("couldn't load config")
		os.Exit(1)
	}
	cfg.Args = args

	// the config file and the environment may override --logLevel
	if cfg.LogLevel != "" {
		lvl, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logger.WithError(err).Error("couldn't parse log level")
			os.Exit(1)
		}
		logger.SetLevel(lvl)
	}

	if !isTerminal(os.Stdout) {
		cfg.NoColor = true
	}
	if !isTerminal(os.Stderr) {
		cfg.ProgressBar = false
	}

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		if !errors.Is(err, errChecksFailed) {
			logger.WithError(err).Error("caught error in main function")
		}
		os.Exit(1)
	}
}

// run executes one test run and writes the results to out. It returns
// errChecksFailed when the run completed with failures.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, out io.Writer) error {
	logger.WithField("version", version.Version).Info("httpcheck started")

	console, err := report.NewConsole(out, cfg.ReportFormat, cfg.NoColor)
	if err != nil {
		return err
	}

	c, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return errors.Wrap(err, "couldn't load check catalog")
	}

	logger.WithFields(logrus.Fields{
		"catalog": c.Name,
		"checks":  c.NumberOfChecks(),
	}).Info("Check catalog loaded")

	client, err := newHTTPClient(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "couldn't create HTTP client")
	}

	s, err := scanner.New(logger, cfg, client, console)
	if err != nil {
		return errors.Wrap(err, "couldn't create scanner")
	}

	console.Header(cfg.URL, cfg.Args)

	// fixtures are removed on every return path, including interruption
	manager := fixture.NewManager(cfg.DocRoot, logger)
	defer func() {
		if cleanupErr := manager.Cleanup(); cleanupErr != nil {
			logger.WithError(cleanupErr).Warn("some fixtures were not removed")
		}
	}()

	console.Notice("Creating temporary test files...")
	if err = suite.CreateFixtures(manager, c); err != nil {
		return errors.Wrap(err, "couldn't create fixtures")
	}

	if err = suite.Build(s, c, check.NewChecker(client, cfg.URL), cfg.DocRoot); err != nil {
		return errors.Wrap(err, "couldn't register checks")
	}

	summary, err := s.RunAll(ctx)
	if errors.Is(err, scanner.ErrServerUnreachable) {
		console.Unreachable(cfg.URL, err)
		return err
	}
	if err != nil {
		return errors.Wrap(err, "error occurred while testing")
	}

	ok := console.Summarize(summary)

	if cfg.ReportFile != "" {
		if err = report.ExportJSONReport(cfg.ReportFile, time.Now(), cfg.URL, cfg.Args, summary, s.Outcomes()); err != nil {
			return err
		}
		logger.WithField("filename", cfg.ReportFile).Info("Export JSON report")
	}

	if !ok {
		return errChecksFailed
	}

	return nil
}

func newHTTPClient(cfg *config.Config, logger *logrus.Logger) (clients.HTTPClient, error) {
	clientType, ok := types.ParseHTTPClientType(cfg.HTTPClient)
	if !ok {
		return nil, errors.Errorf("invalid HTTP client: %s", cfg.HTTPClient)
	}

	logger.WithField("http_client", clientType.String()).
		Infof("%s is used as an HTTP client to make requests", clientType)

	switch clientType {
	case types.RestyHTTPClient:
		return restyhttp.NewClient(cfg)
	default:
		return gohttp.NewClient(cfg)
	}
}

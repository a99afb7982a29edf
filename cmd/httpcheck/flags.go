package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wallarm/httpcheck/internal/config"
	"github.com/wallarm/httpcheck/internal/report"
	"github.com/wallarm/httpcheck/internal/scanner/types"
	"github.com/wallarm/httpcheck/internal/version"
)

const (
	textLogFormat = "text"
	jsonLogFormat = "json"
)

var (
	logFormatsSet = map[string]any{
		textLogFormat: nil,
		jsonLogFormat: nil,
	}
	logFormats = slices.Sorted(maps.Keys(logFormatsSet))
)

var (
	httpClientsSet = map[string]any{
		types.GoHTTPClientName: nil,
		types.RestyClientName:  nil,
	}
	httpClients = slices.Sorted(maps.Keys(httpClientsSet))
)

const (
	defaultURL        = "http://localhost:8080"
	defaultDocRoot    = "./public"
	defaultConfigPath = "config.yaml"
)

const cliDescription = `httpcheck runs a catalog of HTTP checks against a static file and CGI
server, creating the fixtures it needs under the document root and removing
them afterwards. It exits with status 0 only if every check passed.

Usage: %s [OPTIONS] [--url <URL>]

Options:
`

var (
	configPath string
	quiet      bool
	logLevel   logrus.Level
	logFormat  string
)

var usage = func() {
	flag.CommandLine.SetOutput(os.Stdout)
	fmt.Fprintf(os.Stdout, cliDescription, os.Args[0])
	flag.PrintDefaults()
}

// parseFlags parses all httpcheck CLI flags
func parseFlags() (args []string, err error) {
	flag.Usage = usage

	// General parameters
	flag.StringVar(&configPath, "configPath", defaultConfigPath, "Path to the config file, ignored if it doesn't exist")
	flag.BoolVar(&quiet, "quiet", false, "If present, disable verbose logging")
	logLvl := flag.String("logLevel", "info", "Logging level: panic, fatal, error, warn, info, debug, trace")
	flag.StringVar(&logFormat, "logFormat", textLogFormat, "Set logging format: "+strings.Join(logFormats, ", "))
	showVersion := flag.Bool("version", false, "Show httpcheck version and exit")

	// Target settings
	urlParam := flag.String("url", defaultURL, "Base URL of the server under test")
	flag.String("docRoot", defaultDocRoot, "Document root of the server under test, fixtures are created here")
	flag.String("catalog", "", "Path to a YAML check catalog, the embedded catalog is used if empty")

	// HTTP client settings
	httpClient := flag.String("httpClient", types.GoHTTPClientName, "Which HTTP client use to send requests: "+strings.Join(httpClients, ", "))
	flag.Duration("probeTimeout", 5*time.Second, "Timeout of the server liveness probe")
	flag.Duration("requestTimeout", 0, "Timeout of every check request, 0 means no timeout")
	flag.Int("maxRedirects", 0, "The maximum number of redirects to follow")
	flag.String("addHeader", "", "An HTTP header to add to requests")

	// Selection settings
	flag.StringSlice("run", nil, "Run only the checks whose \"group/name\" matches one of these regexes")
	flag.StringSlice("skip", nil, "Skip the checks whose \"group/name\" matches one of these regexes")

	// Output settings
	flag.Bool("progressBar", false, "If present, show a progress bar on stderr")
	flag.Bool("noColor", false, "If present, disable colored output")
	reportFormat := flag.String("reportFormat", report.TextFormat, "Console output format: "+strings.Join(report.ConsoleFormats, ", "))
	flag.String("reportFile", "", "If set, save the JSON report of the run to this file")

	flag.Parse()

	if *showVersion {
		fmt.Fprintf(os.Stderr, "httpcheck %s\n", version.Version)
		os.Exit(0)
	}

	logrusLogLvl, err := logrus.ParseLevel(*logLvl)
	if err != nil {
		return nil, err
	}
	logLevel = logrusLogLvl

	if err = validateLogFormat(logFormat); err != nil {
		return nil, err
	}

	if err = validateHttpClient(*httpClient); err != nil {
		return nil, err
	}

	if err = report.ValidateConsoleFormat(*reportFormat); err != nil {
		return nil, err
	}

	validURL, err := validateURL(*urlParam, httpProto)
	if err != nil {
		return nil, errors.Wrap(err, "URL is not valid")
	}
	*urlParam = strings.TrimSuffix(validURL.String(), "/")

	args, err = normalizeArgs()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't normalize args")
	}

	return args, nil
}

// normalizeArgs returns the used CLI args in a unified form.
func normalizeArgs() ([]string, error) {
	// disable lexicographical order
	flag.CommandLine.SortFlags = false

	var (
		args []string
		err  error
	)

	fn := func(f *flag.Flag) {
		// skip if flag wasn't changed
		if !f.Changed {
			return
		}

		var arg string

		// all types listed in parseFlags function
		argType := f.Value.Type()
		switch argType {
		case "string":
			arg = fmt.Sprintf("--%s=%s", f.Name, shellescape.Quote(strings.TrimSpace(f.Value.String())))

		case "stringSlice":
			values, _ := flag.CommandLine.GetStringSlice(f.Name)
			quoted := make([]string, 0, len(values))
			for _, v := range values {
				quoted = append(quoted, shellescape.Quote(v))
			}
			arg = fmt.Sprintf("--%s=%s", f.Name, strings.Join(quoted, ","))

		case "bool":
			arg = fmt.Sprintf("--%s", f.Name)

		case "int", "duration":
			arg = fmt.Sprintf("--%s=%s", f.Name, f.Value.String())

		default:
			err = multierror.Append(err, fmt.Errorf("unknown CLI argument type: %s", argType))
		}

		args = append(args, arg)
	}

	// get all changed flags
	flag.Visit(fn)

	if err != nil {
		return nil, err
	}

	return args, nil
}

// loadConfig merges the CLI flags with the config file, if there is one, and
// the environment.
func loadConfig() (*config.Config, error) {
	v := viper.New()

	if err := v.BindPFlags(flag.CommandLine); err != nil {
		return nil, err
	}

	v.SetConfigFile(configPath)
	v.SetEnvPrefix("httpcheck")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// the default config file is optional
		if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) || flag.CommandLine.Changed("configPath") {
			return nil, errors.Wrap(err, "couldn't read config file")
		}
	}

	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "couldn't decode config")
	}

	cfg.URL = strings.TrimSuffix(cfg.URL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

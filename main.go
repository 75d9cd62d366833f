package main

import (
	"fmt"
	"os"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/app-scheme/internal/config"
	"gitlab.com/tachyons/app-scheme/internal/logging"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

var (
	schemeName     = flag.String("scheme", "app", "The URL scheme to serve, without '://'")
	backendName    = flag.String("backend", "webengine", "The active rendering backend: 'webkit' or 'webengine'")
	docRoot        = flag.String("doc-root", "share/doc", "The directory the help and license pages are read from")
	historyPath    = flag.String("history-path", "history.db", "Path to the visit history database")
	bookmarksPath  = flag.String("bookmarks-path", "bookmarks", "Path to the bookmark file")
	logFormat      = flag.String("log-format", "text", "The log output format: 'text' or 'json'")
	logVerbose     = flag.Bool("log-verbose", false, "Verbose logging")
	logBufferSize  = flag.Int("log-buffer-size", 500, "Number of log entries kept for the log pages")
	metricsAddress = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	dumpBody       = flag.Bool("dump", false, "Write page bodies to stdout instead of outcome summaries")
)

func configFromFlags() config.Config {
	return config.Config{
		Scheme:         *schemeName,
		Backend:        *backendName,
		DocRoot:        *docRoot,
		HistoryPath:    *historyPath,
		BookmarksPath:  *bookmarksPath,
		LogFormat:      *logFormat,
		LogVerbose:     *logVerbose,
		LogBufferSize:  *logBufferSize,
		MetricsAddress: *metricsAddress,
	}
}

func fatal(err error, message string) {
	log.WithError(err).Fatal(message)
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func appMain() {
	var showVersion = flag.Bool("version", false, "Show version")

	// read from -config=/path/to/app-scheme-config
	flag.String(flag.DefaultConfigFlagname, "", "path to config file")
	flag.Parse()

	printVersion(*showVersion, VERSION)

	cfg := configFromFlags()
	if err := cfg.Validate(); err != nil {
		fatal(err, "invalid configuration")
	}

	if err := logging.ConfigureLogging(cfg.LogFormat, cfg.LogVerbose); err != nil {
		fatal(err, "Failed to initialize logging")
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
		"scheme":   cfg.Scheme,
		"backend":  cfg.Backend,
	}).Info("app-scheme shell")

	a, err := newApp(cfg)
	if err != nil {
		fatal(err, "could not wire the dispatcher")
	}
	defer a.Close()

	a.listenMetrics()
	a.Run(os.Stdin, os.Stdout, *dumpBody)
}

func main() {
	log.SetOutput(os.Stderr)

	appMain()
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/app-scheme/internal/bookmarks"
	"gitlab.com/tachyons/app-scheme/internal/config"
	"gitlab.com/tachyons/app-scheme/internal/history"
	"gitlab.com/tachyons/app-scheme/internal/logbuf"
	"gitlab.com/tachyons/app-scheme/internal/pages"
	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

// theApp owns the dispatcher and the collaborators the builtin pages
// render from.
type theApp struct {
	config     config.Config
	dispatcher *scheme.Dispatcher
	pages      *pages.Pages
	history    *history.Store
}

func newApp(cfg config.Config) (*theApp, error) {
	var result *multierror.Error

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		result = multierror.Append(result, err)
	}

	marks, err := bookmarks.Open(cfg.BookmarksPath)
	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		if hist != nil {
			hist.Close()
		}
		return nil, err
	}

	buf := logbuf.New(cfg.LogBufferSize)
	log.AddHook(buf)

	registry := scheme.NewRegistry()
	p := pages.Register(registry, pages.Config{
		Version:   VERSION,
		Revision:  REVISION,
		DocRoot:   cfg.DocRoot,
		History:   hist,
		Bookmarks: marks,
		LogBuffer: buf,
	})

	return &theApp{
		config:     cfg,
		dispatcher: scheme.NewDispatcher(registry, scheme.Backend(cfg.Backend)),
		pages:      p,
		history:    hist,
	}, nil
}

func (a *theApp) Close() error {
	return a.history.Close()
}

// resolve dispatches raw, following at most one redirect hop. The
// canonicalizer guarantees one hop is always enough.
func (a *theApp) resolve(raw string) (*scheme.Content, error) {
	content, err := a.dispatcher.Dispatch(raw)

	var redirect *scheme.RedirectError
	if errors.As(err, &redirect) {
		return a.dispatcher.Dispatch(redirect.URL)
	}
	return content, err
}

// describe turns a dispatch outcome into a one-line summary for the
// shell.
func describe(content *scheme.Content, err error) string {
	if err == nil {
		return fmt.Sprintf("%s (%d bytes)", content.Type, len(content.Data))
	}

	var notFound *scheme.NotFoundError
	var signaled *scheme.Error
	var ioErr *scheme.IOError

	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("not found: %s", notFound.URL)
	case errors.As(err, &signaled):
		return fmt.Sprintf("error %d: %s", signaled.Code, signaled.Message)
	case errors.As(err, &ioErr):
		return fmt.Sprintf("I/O error: %v", ioErr.Cause)
	default:
		return fmt.Sprintf("fault: %v", err)
	}
}

// Run reads URLs from in, one per line, and writes outcomes to out.
// Lines of the form ":eval <text>" feed the eval page instead of
// dispatching.
func (a *theApp) Run(in io.Reader, out io.Writer, dumpBody bool) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":eval ") {
			a.pages.SetEvalOutput(strings.TrimPrefix(line, ":eval "))
			fmt.Fprintln(out, "ok")
			continue
		}

		content, err := a.resolve(line)
		if dumpBody && err == nil {
			out.Write(content.Data)
			fmt.Fprintln(out)
		} else {
			fmt.Fprintln(out, describe(content, err))
		}

		if err == nil {
			a.recordVisit(line)
		}
	}

	if err := scanner.Err(); err != nil {
		log.WithError(err).Error("reading input failed")
	}
}

func (a *theApp) recordVisit(raw string) {
	if err := a.history.Add(raw, "", time.Now()); err != nil {
		log.WithError(err).Warn("could not record visit")
	}
}

// listenMetrics optionally exposes Prometheus metrics over HTTP. This is
// host infrastructure; the dispatcher itself never touches a socket.
func (a *theApp) listenMetrics() {
	if a.config.MetricsAddress == "" {
		return
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		log.WithField("listener", a.config.MetricsAddress).Info("metrics listener")
		if err := http.ListenAndServe(a.config.MetricsAddress, mux); err != nil {
			log.WithError(err).Error("metrics listener failed")
		}
	}()
}

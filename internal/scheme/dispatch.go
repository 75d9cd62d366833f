package scheme

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/app-scheme/metrics"
)

// Content is the final payload handed back to the renderer.
type Content struct {
	Type string
	Data []byte
}

// Dispatcher resolves raw app:// URLs against a registry. The active
// backend is fixed at construction; there is no global backend state.
type Dispatcher struct {
	registry *Registry
	backend  Backend
}

// NewDispatcher returns a dispatcher serving from registry under the given
// active backend.
func NewDispatcher(registry *Registry, backend Backend) *Dispatcher {
	return &Dispatcher{registry: registry, backend: backend}
}

// Backend returns the active backend the dispatcher was built with.
func (d *Dispatcher) Backend() Backend {
	return d.backend
}

// Dispatch resolves rawURL and returns the content to render.
//
// Exactly one outcome is produced per call. On failure the error is one of
// *RedirectError (re-dispatch on the canonical URL), *NotFoundError (no
// handler owns the authority), *IOError (handler hit a local I/O failure,
// cause preserved), or *Error (the handler rejected the request; shown to
// the user verbatim). Any other error is a defect inside a handler and
// crosses this boundary unmodified.
func (d *Dispatcher) Dispatch(rawURL string) (*Content, error) {
	req, err := Canonicalize(rawURL)
	if err != nil {
		var redirect *RedirectError
		if errors.As(err, &redirect) {
			metrics.DispatchTotal.WithLabelValues("redirect").Inc()
			log.WithFields(log.Fields{
				"url":      rawURL,
				"location": redirect.URL,
			}).Debug("Redirecting to canonical app:// URL")
		} else {
			metrics.DispatchTotal.WithLabelValues("invalid").Inc()
		}
		return nil, err
	}

	logger := log.WithFields(log.Fields{
		"dispatch_id": uuid.NewString(),
		"url":         rawURL,
		"authority":   req.Authority,
		"path":        req.Path,
	})
	logger.Debug("Resolving app:// URL")

	e, ok := d.registry.lookup(req.Authority)
	if !ok {
		metrics.DispatchTotal.WithLabelValues("not_found").Inc()
		logger.Debug("No handler registered")
		return nil, &NotFoundError{URL: rawURL}
	}

	started := time.Now()
	resp, err := e.invoke(req, d.backend)
	metrics.HandlerDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		return nil, d.classify(logger, err)
	}

	if resp == nil || resp.ContentType == "" {
		// A handler without a content type is a programming error,
		// not a request failure.
		panic(fmt.Sprintf("scheme: handler for %q returned no content type", req.Authority))
	}

	metrics.DispatchTotal.WithLabelValues("success").Inc()
	return &Content{Type: resp.ContentType, Data: normalizeBody(resp)}, nil
}

// classify sorts a handler failure into the two kinds the dispatcher knows
// about. Everything else propagates untouched.
func (d *Dispatcher) classify(logger *log.Entry, err error) error {
	var signaled *Error
	if errors.As(err, &signaled) {
		metrics.DispatchTotal.WithLabelValues("error").Inc()
		logger.WithError(err).WithField("code", signaled.Code).Debug("Handler rejected request")
		return signaled
	}

	var ioErr *IOError
	if errors.As(err, &ioErr) {
		metrics.DispatchTotal.WithLabelValues("io_error").Inc()
		logger.WithError(err).Warn("Handler I/O failure")
		return ioErr
	}

	if isIOError(err) {
		metrics.DispatchTotal.WithLabelValues("io_error").Inc()
		logger.WithError(err).Warn("Handler I/O failure")
		return &IOError{Cause: err}
	}

	metrics.DispatchTotal.WithLabelValues("fault").Inc()
	logger.WithError(err).Error("Unhandled handler failure")
	return err
}

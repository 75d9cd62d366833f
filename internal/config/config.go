// Package config holds the runtime configuration of the app-scheme shell.
package config

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

// RFC 3986 scheme syntax.
var schemePattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]*$`)

// Config is everything the shell needs to wire the dispatcher and the
// builtin pages. It comes straight from flags; see main.go.
type Config struct {
	// Scheme is the URL scheme being served, without "://".
	Scheme string

	// Backend is the active rendering backend identifier.
	Backend string

	DocRoot       string
	HistoryPath   string
	BookmarksPath string

	LogFormat  string
	LogVerbose bool

	// LogBufferSize is the number of log entries the app://log pages
	// keep available.
	LogBufferSize int

	// MetricsAddress optionally exposes Prometheus metrics over HTTP.
	MetricsAddress string
}

// Validate checks the configuration before anything is wired up.
func (c *Config) Validate() error {
	backends := make([]interface{}, 0, len(scheme.KnownBackends))
	for _, b := range scheme.KnownBackends {
		backends = append(backends, string(b))
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.Scheme, validation.Required, validation.Match(schemePattern)),
		validation.Field(&c.Backend, validation.Required, validation.In(backends...)),
		validation.Field(&c.HistoryPath, validation.Required),
		validation.Field(&c.BookmarksPath, validation.Required),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.LogBufferSize, validation.Required, validation.Min(1)),
	)
}

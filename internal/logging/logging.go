// Package logging initializes the process logger.
package logging

import (
	"gitlab.com/gitlab-org/labkit/log"
)

// ConfigureLogging will initialize the system logger.
func ConfigureLogging(format string, verbose bool) error {
	if format == "" {
		format = "text"
	}

	level := "info"
	if verbose {
		level = "debug"
	}

	_, err := log.Initialize(
		log.WithFormatter(format),
		log.WithLogLevel(level),
	)
	return err
}

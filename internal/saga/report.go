// Package saga holds the long-lived orchestration routines. Each routine
// watches the intent bus for its trigger kinds, performs the matching
// gateway call, and publishes the result intent. Every loop re-arms
// unconditionally after any outcome, so one failed call never disables
// future attempts of the same kind.
package saga

import (
	"errors"

	"github.com/daoleviethoang/friendly-frontend/internal/gateway"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
)

// Reporter receives the failures the routines swallow, so tests and
// telemetry can observe them without scraping process output.
type Reporter func(routine string, err error)

func LogReporter(log logger.Logger) Reporter {
	return func(routine string, err error) {
		log.Error("routine call failed", "routine", routine, "error", err)
	}
}

// remoteMessage extracts the remote-provided failure text, falling back to
// a generic line for transport-level errors.
func remoteMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "request failed"
}

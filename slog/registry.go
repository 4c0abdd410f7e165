// Package slog provides logging decorators for the marginalia interfaces.
// Services stay logging-free; composition adds observability.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/haslan/marginalia"
)

// Ensure LoggingRegistrySource implements marginalia.RegistrySource.
var _ marginalia.RegistrySource = (*LoggingRegistrySource)(nil)

// LoggingRegistrySource wraps a RegistrySource with load logging. Registry
// load failures are logged here and nowhere surfaced to the reader: the
// page degrades to unannotated prose.
type LoggingRegistrySource struct {
	next   marginalia.RegistrySource
	logger *slog.Logger
}

// NewLoggingRegistrySource creates a new LoggingRegistrySource.
func NewLoggingRegistrySource(next marginalia.RegistrySource, logger *slog.Logger) *LoggingRegistrySource {
	return &LoggingRegistrySource{next: next, logger: logger}
}

// Load delegates to the wrapped source and logs the operation.
func (s *LoggingRegistrySource) Load(ctx context.Context, location string) (reg *marginalia.Registry, err error) {
	defer func(begin time.Time) {
		terms := 0
		if reg != nil {
			terms = reg.Len()
		}
		s.logger.Info("glossary load",
			"location", location,
			"terms", terms,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, location)
}

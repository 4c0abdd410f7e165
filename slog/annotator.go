package slog

import (
	"log/slog"
	"time"

	"github.com/haslan/marginalia"
)

// Ensure LoggingAnnotator implements marginalia.PageAnnotator.
var _ marginalia.PageAnnotator = (*LoggingAnnotator)(nil)

// LoggingAnnotator wraps a PageAnnotator with pass logging.
type LoggingAnnotator struct {
	next   marginalia.PageAnnotator
	logger *slog.Logger
}

// NewLoggingAnnotator creates a new LoggingAnnotator.
func NewLoggingAnnotator(next marginalia.PageAnnotator, logger *slog.Logger) *LoggingAnnotator {
	return &LoggingAnnotator{next: next, logger: logger}
}

// Annotate delegates to the wrapped annotator and logs the pass.
func (a *LoggingAnnotator) Annotate(pageHTML string, reg *marginalia.Registry, opts marginalia.AnnotateOptions) (res *marginalia.AnnotateResult, err error) {
	defer func(begin time.Time) {
		matched, links := 0, 0
		if res != nil {
			matched = res.Matched
			links = len(res.Anchors)
		}
		a.logger.Debug("annotation pass",
			"matched", matched,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Annotate(pageHTML, reg, opts)
}

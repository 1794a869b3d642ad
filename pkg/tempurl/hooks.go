package tempurl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// URLIssued does nothing and returns nil
func (n *NoopEventSink) URLIssued(ctx context.Context, objectID uuid.UUID, url string, expiresAt time.Time) error {
	return nil
}

// URLReused does nothing and returns nil
func (n *NoopEventSink) URLReused(ctx context.Context, objectID uuid.UUID, url string) error {
	return nil
}

// URLEvicted does nothing and returns nil
func (n *NoopEventSink) URLEvicted(ctx context.Context, objectID uuid.UUID) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other action
// Useful for development and debugging
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink. A nil logger falls
// back to slog.Default().
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

// URLIssued logs the issuance of a fresh signed URL
func (l *LoggingEventSink) URLIssued(ctx context.Context, objectID uuid.UUID, url string, expiresAt time.Time) error {
	l.logger.Info("signed URL issued", "object_id", objectID, "expires_at", expiresAt)
	return nil
}

// URLReused logs a cache hit
func (l *LoggingEventSink) URLReused(ctx context.Context, objectID uuid.UUID, url string) error {
	l.logger.Debug("signed URL reused", "object_id", objectID)
	return nil
}

// URLEvicted logs an expiry eviction
func (l *LoggingEventSink) URLEvicted(ctx context.Context, objectID uuid.UUID) error {
	l.logger.Debug("signed URL evicted", "object_id", objectID)
	return nil
}

// MultiEventSink fans events out to multiple sinks. The first error is
// returned after all sinks have been called.
type MultiEventSink struct {
	sinks []EventSink
}

// NewMultiEventSink creates an event sink that forwards to all given sinks
func NewMultiEventSink(sinks ...EventSink) EventSink {
	return &MultiEventSink{sinks: sinks}
}

func (m *MultiEventSink) URLIssued(ctx context.Context, objectID uuid.UUID, url string, expiresAt time.Time) error {
	var first error
	for _, sink := range m.sinks {
		if err := sink.URLIssued(ctx, objectID, url, expiresAt); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *MultiEventSink) URLReused(ctx context.Context, objectID uuid.UUID, url string) error {
	var first error
	for _, sink := range m.sinks {
		if err := sink.URLReused(ctx, objectID, url); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *MultiEventSink) URLEvicted(ctx context.Context, objectID uuid.UUID) error {
	var first error
	for _, sink := range m.sinks {
		if err := sink.URLEvicted(ctx, objectID); err != nil && first == nil {
			first = err
		}
	}
	return first
}

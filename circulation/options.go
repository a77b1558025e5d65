package circulation

import (
	"time"
)

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithLoanPeriod sets the time between issuing a book and its due date.
func WithLoanPeriod(period time.Duration) Option {
	return func(s *Store) error {
		if period <= 0 {
			return ErrInvalidLoanPeriod
		}

		s.loanPeriod = period

		return nil
	}
}

// WithClock sets the time source used to stamp new loans and events.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) error {
		if clock == nil {
			return ErrNilClock
		}

		s.clock = clock

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Info level: registrations, issues, returns and rejected operations
// Debug level: fine calculations
// Warn level: event recorder failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It takes precedence over the logger set with WithLogger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithEventRecorder sets the recorder that receives every domain event produced by the Store.
func WithEventRecorder(recorder EventRecorder) Option {
	return func(s *Store) error {
		s.recorder = recorder
		return nil
	}
}

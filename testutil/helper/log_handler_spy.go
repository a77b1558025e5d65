package helper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler implementation that captures log records for testing.
type LogHandlerSpy struct {
	records     []slog.Record
	mu          sync.Mutex
	logToStdout bool
}

// NewLogHandlerSpy creates a new LogHandlerSpy.
// Switchable to log to stdout, which can be useful for debugging tests by seeing the actual log output.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{
		records:     make([]slog.Record, 0),
		logToStdout: logToStdout,
	}
}

// NewLogger returns a *slog.Logger writing into the spy.
func (s *LogHandlerSpy) NewLogger() *slog.Logger {
	return slog.New(s)
}

// Handle implements slog.Handler interface.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)

	if s.logToStdout {
		jsonHandler := slog.NewJSONHandler(os.Stdout, nil)
		_ = jsonHandler.Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler interface.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler interface.
func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

// WithGroup implements slog.Handler interface.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// GetRecordCount returns the number of captured log records.
func (s *LogHandlerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Reset clears all captured log records.
func (s *LogHandlerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.records[:0]
}

// LogRecordMatcher provides a fluent interface for checking log record attributes.
// It keeps every record that satisfied the chain so far, so each check narrows the candidates.
type LogRecordMatcher struct {
	records []slog.Record
}

// HasDebugLogWithMessage starts a fluent chain to check a debug-level log record.
func (s *LogHandlerSpy) HasDebugLogWithMessage(message string) *LogRecordMatcher {
	return s.hasLogWithMessage(slog.LevelDebug, message)
}

// HasInfoLogWithMessage starts a fluent chain to check an info-level log record.
func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *LogRecordMatcher {
	return s.hasLogWithMessage(slog.LevelInfo, message)
}

// HasWarnLogWithMessage starts a fluent chain to check a warn-level log record.
func (s *LogHandlerSpy) HasWarnLogWithMessage(message string) *LogRecordMatcher {
	return s.hasLogWithMessage(slog.LevelWarn, message)
}

func (s *LogHandlerSpy) hasLogWithMessage(level slog.Level, message string) *LogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matching := make([]slog.Record, 0)
	for i := range s.records {
		if s.records[i].Level == level && s.records[i].Message == message {
			matching = append(matching, s.records[i])
		}
	}

	return &LogRecordMatcher{records: matching}
}

// WithAttr keeps the records that have an attribute with the given key whose value prints as value.
func (m *LogRecordMatcher) WithAttr(key string, value any) *LogRecordMatcher {
	want := fmt.Sprint(value)

	return m.keep(func(attr slog.Attr) bool {
		return attr.Key == key && attr.Value.String() == want
	})
}

// WithKey keeps the records that have an attribute with the given key.
func (m *LogRecordMatcher) WithKey(key string) *LogRecordMatcher {
	return m.keep(func(attr slog.Attr) bool {
		return attr.Key == key
	})
}

// Assert returns true if at least one record met all conditions in the fluent chain.
func (m *LogRecordMatcher) Assert() bool {
	return len(m.records) > 0
}

func (m *LogRecordMatcher) keep(matches func(slog.Attr) bool) *LogRecordMatcher {
	kept := m.records[:0]
	for _, record := range m.records {
		hasAttr := false
		record.Attrs(func(attr slog.Attr) bool {
			if matches(attr) {
				hasAttr = true
				return false // Stop iteration
			}

			return true
		})

		if hasAttr {
			kept = append(kept, record)
		}
	}

	m.records = kept

	return m
}

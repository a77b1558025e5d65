package circulation

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	// OperationDurationMetric tracks record store operation duration.
	OperationDurationMetric = "circulation_operation_duration_seconds"

	// OperationCallsMetric tracks total record store operation calls.
	OperationCallsMetric = "circulation_operation_calls_total"

	// FineDaysMetric records the overdue days of each fine calculation.
	FineDaysMetric = "circulation_fine_days"

	// OperationAddMember labels member registration.
	OperationAddMember = "add_member"

	// OperationIssue labels issuing a book.
	OperationIssue = "issue"

	// OperationReturn labels returning a book.
	OperationReturn = "return"

	// OperationListBorrowed labels listing a member's borrowed books.
	OperationListBorrowed = "list_borrowed"

	// OperationComputeFine labels fine calculation.
	OperationComputeFine = "compute_fine"

	// StatusSuccess indicates the operation completed.
	StatusSuccess = "success"

	// StatusRejected indicates the operation was rejected by a business rule.
	StatusRejected = "rejected"

	// LogMsgMemberRegistered is logged when a member is added.
	LogMsgMemberRegistered = "member registered"

	// LogMsgBookIssued is logged when a book is issued.
	LogMsgBookIssued = "book issued"

	// LogMsgBookReturned is logged when a book is returned.
	LogMsgBookReturned = "book returned"

	// LogMsgFineComputed is logged when a fine is calculated.
	LogMsgFineComputed = "fine computed"

	// LogMsgOperationRejected is logged when an operation is rejected.
	LogMsgOperationRejected = "operation rejected"

	// LogMsgRecordEventFailed is logged when the event recorder fails.
	LogMsgRecordEventFailed = "recording circulation event failed"

	// LogAttrOperation identifies the operation in logs and metric labels.
	LogAttrOperation = "operation"

	// LogAttrStatus identifies the outcome in logs and metric labels.
	LogAttrStatus = "status"

	// LogAttrErrorType classifies the error in metric labels.
	LogAttrErrorType = "error_type"

	// LogAttrMemberID identifies the member in logs.
	LogAttrMemberID = "member_id"

	// LogAttrBookID identifies the book in logs.
	LogAttrBookID = "book_id"

	// LogAttrDueDate carries the due date of a new loan.
	LogAttrDueDate = "due_date"

	// LogAttrFineDays carries the computed fine in overdue days.
	LogAttrFineDays = "fine_days"

	// LogAttrEventType identifies the event type in logs.
	LogAttrEventType = "event_type"

	// LogAttrDurationMS carries the operation duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrError contains error details.
	LogAttrError = "error"
)

// Logger interface for operational logging of the record store.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging.
// It takes precedence over Logger when both are configured. *slog.Logger satisfies it.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting record store metrics.
// It is dependency-free so any metrics backend can be plugged in.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
// The Store uses them when the configured collector implements this interface.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// EventRecorder receives the domain events produced by the Store.
type EventRecorder interface {
	Record(ctx context.Context, event core.DomainEvent) error
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// BuildOperationLabels creates standard metric labels for record store operations.
func BuildOperationLabels(operation string, status string, err error) map[string]string {
	labels := map[string]string{
		LogAttrOperation: operation,
		LogAttrStatus:    status,
	}

	if err != nil {
		labels[LogAttrErrorType] = errorType(err)
	}

	return labels
}

/*** Observability helper methods ***/

func (s *Store) recordOperationMetrics(ctx context.Context, operation string, duration time.Duration, err error) {
	if s.metricsCollector == nil {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusRejected
	}

	labels := BuildOperationLabels(operation, status, err)

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, OperationDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, OperationCallsMetric, labels)
		return
	}

	s.metricsCollector.RecordDuration(OperationDurationMetric, duration, labels)
	s.metricsCollector.IncrementCounter(OperationCallsMetric, labels)
}

func (s *Store) recordFineMetric(ctx context.Context, fineDays int) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{LogAttrOperation: OperationComputeFine}

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, FineDaysMetric, float64(fineDays), labels)
		return
	}

	s.metricsCollector.RecordValue(FineDaysMetric, float64(fineDays), labels)
}

// succeeded logs and meters a completed operation.
func (s *Store) succeeded(ctx context.Context, operation string, msg string, start time.Time, args ...any) {
	duration := time.Since(start)
	s.recordOperationMetrics(ctx, operation, duration, nil)

	args = append(args, LogAttrOperation, operation, LogAttrDurationMS, ToMilliseconds(duration))
	s.logInfo(ctx, msg, args...)
}

// rejected logs and meters an operation rejected by a business rule.
func (s *Store) rejected(ctx context.Context, operation string, start time.Time, err error, args ...any) {
	duration := time.Since(start)
	s.recordOperationMetrics(ctx, operation, duration, err)

	args = append(args, LogAttrOperation, operation, LogAttrError, err.Error(), LogAttrDurationMS, ToMilliseconds(duration))
	s.logInfo(ctx, LogMsgOperationRejected, args...)
}

// record hands the event to the recorder; failures are logged and swallowed.
func (s *Store) record(ctx context.Context, event core.DomainEvent) {
	if s.recorder == nil {
		return
	}

	if err := s.recorder.Record(ctx, event); err != nil {
		s.logWarn(ctx, LogMsgRecordEventFailed, LogAttrEventType, event.IsEventType(), LogAttrError, err.Error())
	}
}

func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

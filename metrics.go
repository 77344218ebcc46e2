package sqlshift

import "time"

// MetricsRecorder receives conversion outcomes. Recording is fire and
// forget: the engine never blocks on it and a panicking recorder cannot
// fail a conversion.
type MetricsRecorder interface {
	// RecordRequest is called once per Convert call, before the outcome is
	// known.
	RecordRequest(source, target Dialect)
	// RecordSuccess is called when every statement converted cleanly.
	RecordSuccess(source, target Dialect)
	// RecordError is called when at least one statement failed.
	RecordError(source, target Dialect)
	// RecordDuration reports the wall-clock time of the whole request.
	RecordDuration(source, target Dialect, elapsed time.Duration)
}

// NopMetrics discards all observations. It is the default recorder.
type NopMetrics struct{}

func (NopMetrics) RecordRequest(Dialect, Dialect)                 {}
func (NopMetrics) RecordSuccess(Dialect, Dialect)                 {}
func (NopMetrics) RecordError(Dialect, Dialect)                   {}
func (NopMetrics) RecordDuration(Dialect, Dialect, time.Duration) {}

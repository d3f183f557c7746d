// Package metrics defines the observability hooks handlers call and a
// Prometheus-backed implementation.
package metrics

import "time"

// SubmissionResult labels the outcome of a contact submission.
type SubmissionResult string

const (
	SubmissionAccepted  SubmissionResult = "accepted"
	SubmissionDuplicate SubmissionResult = "duplicate"
	SubmissionInvalid   SubmissionResult = "invalid"
)

// Recorder receives domain and HTTP observations. Implementations must be
// safe for concurrent use.
type Recorder interface {
	IncCounter()
	IncContactSubmission(result SubmissionResult)
	ObserveRender(template, block string, d time.Duration, err error)
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// NoopRecorder drops every observation. It is the default when metrics are off.
type NoopRecorder struct{}

func (NoopRecorder) IncCounter()                                        {}
func (NoopRecorder) IncContactSubmission(SubmissionResult)              {}
func (NoopRecorder) ObserveRender(string, string, time.Duration, error) {}
func (NoopRecorder) ObserveHTTP(string, string, int, time.Duration)     {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

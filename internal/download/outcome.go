package download

import (
	"errors"
	"fmt"
)

// ErrInvalidConcurrency is returned when a batch is started with a
// concurrency limit below 1.
var ErrInvalidConcurrency = errors.New("concurrency limit must be positive")

// Task is one file to fetch: where it comes from and where it goes.
//
// Destination paths must be distinct within a batch.
type Task struct {
	SourceURL       string
	DestinationPath string
}

// Outcome is the terminal classification of a task.
type Outcome int

const (
	// Completed means the body was streamed to the destination in full.
	Completed Outcome = iota

	// SkippedAlreadyExists means the destination existed before the task
	// ran. No request was made and the file was left untouched.
	SkippedAlreadyExists

	// SkippedNotFound means the server answered with a non-2xx status or
	// the host could not be resolved. No file is left behind.
	SkippedNotFound

	// FailedAndCleaned means an unexpected error occurred. The destination
	// was removed and a *FatalError is returned alongside.
	FailedAndCleaned
)

// String returns a short human readable name.
func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case SkippedAlreadyExists:
		return "skipped (exists)"
	case SkippedNotFound:
		return "skipped (not found)"
	case FailedAndCleaned:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports what happened to one task.
type Result struct {
	Task    Task
	Outcome Outcome

	// Bytes is the number of bytes written for Completed tasks.
	Bytes int64
}

// FatalError is an unexpected failure of a single task. It aborts the
// batch after the current wave settles.
type FatalError struct {
	Task Task
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("download %s to %s: %v", e.Task.SourceURL, e.Task.DestinationPath, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Completed            int
	SkippedAlreadyExists int
	SkippedNotFound      int
	Failed               int
	Waves                int
	Bytes                int64
}

// Total returns the number of tasks that reached a terminal outcome.
func (s Summary) Total() int {
	return s.Completed + s.SkippedAlreadyExists + s.SkippedNotFound + s.Failed
}

func (s *Summary) add(r Result) {
	switch r.Outcome {
	case Completed:
		s.Completed++
		s.Bytes += r.Bytes
	case SkippedAlreadyExists:
		s.SkippedAlreadyExists++
	case SkippedNotFound:
		s.SkippedNotFound++
	case FailedAndCleaned:
		s.Failed++
	}
}

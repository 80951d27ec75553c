package download

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ItemDownloader runs a single task. *Downloader implements it.
type ItemDownloader interface {
	Download(ctx context.Context, task Task) (Result, error)
}

// Observer is told about every task as it reaches its outcome. It is
// called from the task's goroutine, so it must be safe for concurrent use.
type Observer func(Result, error)

// Scheduler runs a batch of tasks in sequential waves.
//
// A wave is the next limit tasks of the list. Every task in a wave runs
// concurrently and the scheduler waits for all of them before starting
// the next wave, so no more than limit tasks are ever in flight.
type Scheduler struct {
	downloader ItemDownloader
	logger     zerolog.Logger
	observer   Observer
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithObserver registers fn to receive every task result.
func WithObserver(fn Observer) SchedulerOption {
	return func(s *Scheduler) {
		s.observer = fn
	}
}

// NewScheduler creates a Scheduler driving d.
func NewScheduler(d ItemDownloader, logger zerolog.Logger, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{downloader: d, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DownloadAll runs tasks in waves of at most limit.
//
// When a task fails fatally its siblings in the same wave still run to
// completion; then the first fatal error is returned and later waves
// are never started. A cancelled context also stops the batch between
// waves. The Summary covers every task that reached an outcome.
func (s *Scheduler) DownloadAll(ctx context.Context, tasks []Task, limit int) (Summary, error) {
	var summary Summary
	if limit <= 0 {
		return summary, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, limit)
	}

	log := s.logger.With().Str("batch", uuid.NewString()).Logger()
	log.Debug().Int("tasks", len(tasks)).Int("limit", limit).Msg("starting batch")

	for start := 0; start < len(tasks); start += limit {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		wave := tasks[start:min(start+limit, len(tasks))]
		summary.Waves++
		log.Debug().Int("wave", summary.Waves).Int("size", len(wave)).Msg("starting wave")

		results, err := s.runWave(ctx, wave)
		for _, r := range results {
			summary.add(r)
		}
		if err != nil {
			log.Error().Err(err).Int("wave", summary.Waves).Msg("aborting batch")
			return summary, err
		}
	}

	log.Debug().
		Int("completed", summary.Completed).
		Int("skipped_exists", summary.SkippedAlreadyExists).
		Int("skipped_not_found", summary.SkippedNotFound).
		Msg("batch finished")
	return summary, nil
}

// runWave starts every task of wave and returns once all are terminal.
func (s *Scheduler) runWave(ctx context.Context, wave []Task) ([]Result, error) {
	results := make([]Result, len(wave))

	// A plain Group rather than WithContext: a failure must not cancel
	// siblings that are already transferring.
	var g errgroup.Group
	for i, task := range wave {
		g.Go(func() error {
			res, err := s.downloader.Download(ctx, task)
			results[i] = res
			if s.observer != nil {
				s.observer(res, err)
			}
			return err
		})
	}

	err := g.Wait()
	return results, err
}

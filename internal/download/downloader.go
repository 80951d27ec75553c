package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/handiism/album-downloader/internal/fetch"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mock_fetcher.go -package=mocks . Fetcher

// Fetcher retrieves a single resource.
//
// A non-2xx answer is returned as a Response, not an error. Unresolvable
// hosts are reported with an error matching fetch.ErrHostNotFound.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Response, error)
}

// Downloader streams one task to disk.
//
// The destination is created exclusively, so an existing file is never
// fetched or overwritten. On every path other than Completed the file
// handle is closed and the destination removed.
type Downloader struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// NewDownloader creates a Downloader using f for network access.
func NewDownloader(f Fetcher, logger zerolog.Logger) *Downloader {
	return &Downloader{fetcher: f, logger: logger}
}

// Download runs one task.
//
// The error is non-nil only for FailedAndCleaned, and is then a *FatalError.
// Existing destinations, non-2xx statuses and unresolvable hosts are
// reported as skips with a nil error.
func (d *Downloader) Download(ctx context.Context, task Task) (Result, error) {
	log := d.logger.With().Str("url", task.SourceURL).Str("path", task.DestinationPath).Logger()
	result := Result{Task: task}

	file, err := os.OpenFile(task.DestinationPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			log.Warn().Msg("destination exists, skipping")
			result.Outcome = SkippedAlreadyExists
			return result, nil
		}
		return fatal(result, fmt.Errorf("create destination: %w", err))
	}
	defer file.Close()

	resp, err := d.fetcher.Fetch(ctx, task.SourceURL)
	if err != nil {
		d.discard(file, log)
		if errors.Is(err, fetch.ErrHostNotFound) {
			log.Warn().Err(err).Msg("host not found, skipping")
			result.Outcome = SkippedNotFound
			return result, nil
		}
		return fatal(result, fmt.Errorf("fetch: %w", err))
	}
	defer resp.Body.Close()

	if !resp.OK() {
		d.discard(file, log)
		log.Warn().Int("status", resp.StatusCode).Msg("server refused the file, skipping")
		result.Outcome = SkippedNotFound
		return result, nil
	}

	log.Debug().Int64("content_length", resp.ContentLength).Msg("start downloading")

	n, err := io.Copy(file, resp.Body)
	if err != nil {
		d.discard(file, log)
		return fatal(result, fmt.Errorf("write body: %w", err))
	}
	if err := file.Close(); err != nil {
		d.discard(file, log)
		return fatal(result, fmt.Errorf("close destination: %w", err))
	}

	log.Info().Str("size", humanize.Bytes(uint64(n))).Msg("finished")
	result.Outcome = Completed
	result.Bytes = n
	return result, nil
}

// discard closes file and removes it from disk.
func (d *Downloader) discard(file *os.File, log zerolog.Logger) {
	_ = file.Close()
	if err := os.Remove(file.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error().Err(err).Msg("failed to remove destination")
	}
}

func fatal(result Result, err error) (Result, error) {
	result.Outcome = FailedAndCleaned
	return result, &FatalError{Task: result.Task, Err: err}
}

package download_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/handiism/album-downloader/internal/download"
	"github.com/handiism/album-downloader/internal/fetch"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDownloader stands in for the single-item downloader and records
// how tasks overlap in time.
type recordingDownloader struct {
	// rendezvous, when set, returns how many tasks should be in flight
	// together with task i; Download waits (bounded) until that many are.
	rendezvous func(i int) int
	fail       map[int]error

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	finished    int
	started     []int
	finishedAt  map[int]int // task index -> tasks finished when it started
	ended       map[int]bool
}

func newRecordingDownloader() *recordingDownloader {
	return &recordingDownloader{
		fail:       make(map[int]error),
		finishedAt: make(map[int]int),
		ended:      make(map[int]bool),
	}
}

func (d *recordingDownloader) Download(_ context.Context, task download.Task) (download.Result, error) {
	i, _ := strconv.Atoi(strings.TrimPrefix(task.SourceURL, "task-"))

	d.mu.Lock()
	d.inFlight++
	d.maxInFlight = max(d.maxInFlight, d.inFlight)
	d.started = append(d.started, i)
	d.finishedAt[i] = d.finished
	d.mu.Unlock()

	if d.rendezvous != nil {
		want := d.rendezvous(i)
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			d.mu.Lock()
			n := d.inFlight
			d.mu.Unlock()
			if n >= want {
				break
			}
			time.Sleep(time.Millisecond)
		}
	} else {
		time.Sleep(2 * time.Millisecond)
	}

	d.mu.Lock()
	d.inFlight--
	d.finished++
	d.ended[i] = true
	d.mu.Unlock()

	res := download.Result{Task: task, Outcome: download.Completed, Bytes: 1}
	if err := d.fail[i]; err != nil {
		res.Outcome = download.FailedAndCleaned
		res.Bytes = 0
		return res, &download.FatalError{Task: task, Err: err}
	}
	return res, nil
}

func makeTasks(n int) []download.Task {
	tasks := make([]download.Task, n)
	for i := range tasks {
		tasks[i] = download.Task{SourceURL: fmt.Sprintf("task-%d", i), DestinationPath: fmt.Sprintf("/dev/null/%d", i)}
	}
	return tasks
}

func TestScheduler_TwoWaves(t *testing.T) {
	d := newRecordingDownloader()
	d.rendezvous = func(i int) int {
		if i < 5 {
			return 5
		}
		return 2
	}

	summary, err := download.NewScheduler(d, zerolog.Nop()).DownloadAll(context.Background(), makeTasks(7), 5)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Waves)
	assert.Equal(t, 7, summary.Completed)
	assert.Equal(t, int64(7), summary.Bytes)
	assert.Equal(t, 5, d.maxInFlight, "first wave should run all five at once")

	for i := 5; i < 7; i++ {
		assert.Equal(t, 5, d.finishedAt[i], "task %d started before wave 1 settled", i)
	}
}

func TestScheduler_WaveBoundAndBarrier(t *testing.T) {
	tests := []struct {
		tasks int
		limit int
	}{
		{tasks: 10, limit: 1},
		{tasks: 10, limit: 3},
		{tasks: 12, limit: 4},
		{tasks: 3, limit: 8},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d tasks limit %d", tt.tasks, tt.limit), func(t *testing.T) {
			d := newRecordingDownloader()

			summary, err := download.NewScheduler(d, zerolog.Nop()).DownloadAll(context.Background(), makeTasks(tt.tasks), tt.limit)
			require.NoError(t, err)

			wantWaves := (tt.tasks + tt.limit - 1) / tt.limit
			assert.Equal(t, wantWaves, summary.Waves)
			assert.Equal(t, tt.tasks, summary.Total())
			assert.LessOrEqual(t, d.maxInFlight, tt.limit)

			for i := 0; i < tt.tasks; i++ {
				wave := i / tt.limit
				assert.GreaterOrEqual(t, d.finishedAt[i], wave*tt.limit,
					"task %d of wave %d started before the previous wave settled", i, wave)
			}
		})
	}
}

func TestScheduler_FatalErrorStopsLaterWaves(t *testing.T) {
	d := newRecordingDownloader()
	reset := errors.New("connection reset by peer")
	d.fail[1] = reset

	var observed atomic.Int32
	observer := func(download.Result, error) { observed.Add(1) }

	summary, err := download.NewScheduler(d, zerolog.Nop(), download.WithObserver(observer)).
		DownloadAll(context.Background(), makeTasks(7), 3)

	var fatal *download.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.ErrorIs(t, err, reset)
	assert.Equal(t, "task-1", fatal.Task.SourceURL)

	assert.True(t, d.ended[0] && d.ended[2], "siblings in the failing wave run to completion")
	assert.ElementsMatch(t, []int{0, 1, 2}, d.started, "no task of a later wave may start")
	assert.Equal(t, 1, summary.Waves)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, int32(3), observed.Load())
}

func TestScheduler_RejectsInvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		t.Run(strconv.Itoa(limit), func(t *testing.T) {
			d := newRecordingDownloader()

			_, err := download.NewScheduler(d, zerolog.Nop()).DownloadAll(context.Background(), makeTasks(3), limit)

			assert.ErrorIs(t, err, download.ErrInvalidConcurrency)
			assert.Empty(t, d.started)
		})
	}
}

func TestScheduler_EmptyBatch(t *testing.T) {
	d := newRecordingDownloader()

	summary, err := download.NewScheduler(d, zerolog.Nop()).DownloadAll(context.Background(), nil, 5)

	require.NoError(t, err)
	assert.Equal(t, download.Summary{}, summary)
}

func TestScheduler_CancelledContextStartsNothing(t *testing.T) {
	d := newRecordingDownloader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := download.NewScheduler(d, zerolog.Nop()).DownloadAll(ctx, makeTasks(4), 2)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d.started)
}

func TestScheduler_RerunSkipsEverything(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprintf(w, "content of %s", r.URL.Path)
	}))
	defer srv.Close()

	dir := t.TempDir()
	tasks := make([]download.Task, 6)
	for i := range tasks {
		tasks[i] = download.Task{
			SourceURL:       fmt.Sprintf("%s/%02d.mp3", srv.URL, i+1),
			DestinationPath: filepath.Join(dir, fmt.Sprintf("%02d.mp3", i+1)),
		}
	}

	client := fetch.NewClient(time.Second)
	scheduler := download.NewScheduler(download.NewDownloader(client, zerolog.Nop()), zerolog.Nop())

	first, err := scheduler.DownloadAll(context.Background(), tasks, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Completed)
	assert.Equal(t, int32(6), hits.Load())

	second, err := scheduler.DownloadAll(context.Background(), tasks, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, second.SkippedAlreadyExists)
	assert.Equal(t, int32(6), hits.Load(), "second run must not touch the network")

	data, err := os.ReadFile(tasks[0].DestinationPath)
	require.NoError(t, err)
	assert.Equal(t, "content of /01.mp3", string(data))
}

func TestScheduler_NotFoundLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	tasks := []download.Task{
		{SourceURL: srv.URL + "/present.mp3", DestinationPath: filepath.Join(dir, "present.mp3")},
		{SourceURL: srv.URL + "/missing.mp3", DestinationPath: filepath.Join(dir, "missing.mp3")},
	}

	scheduler := download.NewScheduler(download.NewDownloader(fetch.NewClient(time.Second), zerolog.Nop()), zerolog.Nop())
	summary, err := scheduler.DownloadAll(context.Background(), tasks, 2)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.SkippedNotFound)
	assert.FileExists(t, tasks[0].DestinationPath)
	assert.NoFileExists(t, tasks[1].DestinationPath)
}

package download

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/handiism/album-downloader/internal/audio"
	"github.com/handiism/album-downloader/internal/config"
	"github.com/handiism/album-downloader/internal/extract"
	"github.com/handiism/album-downloader/internal/fetch"
	ioutils "github.com/handiism/album-downloader/internal/io"
	"github.com/handiism/album-downloader/internal/model"
	"github.com/rs/zerolog"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager downloads one album: page, tracks, cover, then tags and playlist.
type Manager struct {
	settings   *config.Settings
	client     *fetch.Client
	extractor  *extract.Extractor
	paths      *model.PathBuilder
	downloader *Downloader
	scheduler  *Scheduler
	tagger     *audio.Tagger
	playlist   *audio.PlaylistCreator
	images     *ioutils.ImageService
	logger     zerolog.Logger

	album *model.Album

	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32

	mu        sync.Mutex
	completed map[string]bool

	onProgress func(ProgressEvent)
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// WithHTTPClient makes the Manager use hc for every request.
func WithHTTPClient(hc *http.Client) ManagerOption {
	return func(o *managerOptions) {
		o.httpClient = hc
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(o *managerOptions) {
		o.logger = logger
	}
}

// NewManager creates a new download Manager.
//
// onProgress may be called from several goroutines at once while a wave
// is running.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...ManagerOption) *Manager {
	o := managerOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	client := fetch.NewClient(settings.Timeout(),
		fetch.WithUserAgent(settings.UserAgent),
		fetch.WithHTTPClient(o.httpClient),
	)

	m := &Manager{
		settings:  settings,
		client:    client,
		extractor: extract.NewExtractor(),
		paths:     model.NewPathBuilder(settings.DownloadsPath),
		tagger: audio.NewTagger(&audio.TagConfig{
			ModifyTags: settings.ModifyTags,
			EmbedCover: settings.EmbedCoverArt,
		}),
		playlist:   audio.NewPlaylistCreator(settings.M3UExtended),
		images:     ioutils.NewImageService(),
		logger:     o.logger,
		completed:  make(map[string]bool),
		onProgress: onProgress,
	}
	m.downloader = NewDownloader(client, o.logger)
	m.scheduler = NewScheduler(m.downloader, o.logger, WithObserver(m.observe))
	return m
}

// Initialize fetches the album page and prepares the track list.
func (m *Manager) Initialize(ctx context.Context, albumURL string) error {
	parsedURL, err := url.Parse(albumURL)
	if err != nil {
		return fmt.Errorf("invalid album URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("invalid album URL %q: missing host", albumURL)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching album info: %s", albumURL), Level: LevelVerbose})

	html, err := m.client.GetString(ctx, albumURL)
	if err != nil {
		return fmt.Errorf("fetch album page: %w", err)
	}

	album, err := m.extractor.Extract(html, parsedURL.Host)
	if err != nil {
		return fmt.Errorf("parse album page: %w", err)
	}

	found := len(album.Tracks)
	album.SelectTracks(m.settings.TrackNumbers)
	if len(album.Tracks) == 0 {
		return fmt.Errorf("none of the requested tracks %v are on the page", m.settings.TrackNumbers)
	}
	m.paths.Apply(album)
	m.album = album

	m.totalFiles = int32(len(album.Tracks))
	if m.settings.SaveCoverArt && album.HasCover() {
		m.totalFiles++
	}

	m.logger.Info().Str("artist", album.Artist).Str("album", album.Title).
		Int("tracks", found).Int("selected", len(album.Tracks)).Msg("album parsed")
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found album: %s - %s (%d of %d tracks)", album.Artist, album.Title, len(album.Tracks), found),
		Level:   LevelInfo,
	})
	return nil
}

// Album returns the album prepared by Initialize, or nil.
func (m *Manager) Album() *model.Album {
	return m.album
}

// StartDownloads downloads the initialized album.
//
// Tracks go through the wave scheduler with the configured number of
// simultaneous downloads, then the cover is fetched. A fatal error stops
// everything that has not started yet; skips never do.
func (m *Manager) StartDownloads(ctx context.Context) (Summary, error) {
	album := m.album
	if album == nil {
		return Summary{}, errors.New("no album initialized")
	}

	created, err := ioutils.EnsureDir(album.Path)
	if err != nil {
		return Summary{}, fmt.Errorf("prepare album directory: %w", err)
	}
	if created {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created %s", album.Path), Level: LevelInfo})
	}

	tasks := make([]Task, 0, len(album.Tracks))
	for _, track := range album.Tracks {
		tasks = append(tasks, Task{SourceURL: track.URL, DestinationPath: track.Path})
	}

	summary, err := m.scheduler.DownloadAll(ctx, tasks, m.settings.Simultaneous)
	if err != nil {
		return summary, err
	}

	if m.settings.SaveCoverArt && album.HasCover() {
		res, err := m.downloader.Download(ctx, Task{SourceURL: album.CoverURL, DestinationPath: album.CoverPath})
		m.observe(res, err)
		summary.add(res)
		if err != nil {
			return summary, err
		}
	}

	m.postProcess(album)

	if summary.SkippedNotFound == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully downloaded album: %s", album.Title), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s, some files were not available", album.Title), Level: LevelWarning})
	}
	return summary, nil
}

// Progress returns bytes received and files finished out of the total.
// Skipped files count as finished.
func (m *Manager) Progress() (received int64, filesDone, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt32(&m.downloadedFiles), m.totalFiles
}

// observe turns a task result into progress accounting and events.
// It runs concurrently from scheduler goroutines.
func (m *Manager) observe(res Result, err error) {
	name := filepath.Base(res.Task.DestinationPath)

	switch res.Outcome {
	case Completed:
		atomic.AddInt64(&m.receivedBytes, res.Bytes)
		atomic.AddInt32(&m.downloadedFiles, 1)
		m.mu.Lock()
		m.completed[res.Task.DestinationPath] = true
		m.mu.Unlock()
		m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s (%s)", name, humanize.Bytes(uint64(res.Bytes))), Level: LevelVerbose})
	case SkippedAlreadyExists:
		atomic.AddInt32(&m.downloadedFiles, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s exists. Skipping", name), Level: LevelWarning})
	case SkippedNotFound:
		atomic.AddInt32(&m.downloadedFiles, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s not found. Skipping", res.Task.SourceURL), Level: LevelWarning})
	case FailedAndCleaned:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", name, err), Level: LevelError})
	}
}

// postProcess tags freshly completed tracks and writes the playlist.
// Failures here are reported as warnings only.
func (m *Manager) postProcess(album *model.Album) {
	cover := m.coverForTags(album)

	if m.tagger.Enabled(cover != nil) {
		for _, track := range album.Tracks {
			if !m.isCompleted(track.Path) {
				continue
			}
			if err := m.tagger.SaveTags(track, cover); err != nil {
				m.logger.Warn().Err(err).Str("path", track.Path).Msg("tagging failed")
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.Title, err), Level: LevelWarning})
			}
		}
	}

	if m.settings.CreatePlaylist {
		var present []*model.Track
		for _, track := range album.Tracks {
			if _, err := os.Stat(track.Path); err == nil {
				present = append(present, track)
			}
		}
		content := m.playlist.CreatePlaylist(present)
		if err := ioutils.WriteFile(album.PlaylistPath, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", album.Title), Level: LevelSuccess})
		}
	}
}

// coverForTags loads the cover from disk, scaled for embedding.
// It returns nil when embedding is off or no usable cover exists.
func (m *Manager) coverForTags(album *model.Album) []byte {
	if !m.settings.EmbedCoverArt || album.CoverPath == "" {
		return nil
	}

	data, err := os.ReadFile(album.CoverPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn().Err(err).Str("path", album.CoverPath).Msg("cannot read cover")
		}
		return nil
	}

	cover, err := m.images.FitCover(data, m.settings.CoverArtMaxSize)
	if err != nil {
		m.logger.Warn().Err(err).Str("path", album.CoverPath).Msg("cannot decode cover")
		return nil
	}
	return cover
}

func (m *Manager) isCompleted(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed[path]
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/handiism/album-downloader/internal/config"
	"github.com/handiism/album-downloader/internal/download"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

// options holds the command-line flags. Flags left unset do not
// override the config file.
type options struct {
	configPath   string
	path         string
	tracks       string
	simultaneous int
	playlist     bool
	noTags       bool
	verbose      bool
	dryRun       bool
}

func newRootCmd(ctx context.Context, out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "album-dl [URL]",
		Short:         "Download every track and the cover of an album page",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, &opts)
			if err != nil {
				return err
			}
			return run(ctx, out, settings, &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML config file")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "Base download directory (album goes to <path>/<artist>/<album>)")
	cmd.Flags().StringVarP(&opts.tracks, "tracks", "t", "", "Comma-separated track numbers to download (default all)")
	cmd.Flags().IntVarP(&opts.simultaneous, "simultaneous", "s", 5, "Number of tracks downloaded at the same time")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show every progress message and debug logs")

	// flags without shorthand
	cmd.Flags().BoolVar(&opts.playlist, "playlist", false, "Write an M3U playlist next to the tracks")
	cmd.Flags().BoolVar(&opts.noTags, "no-tags", false, "Do not write ID3 tags or embed the cover")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Read the album page and list tracks without downloading")

	return cmd
}

// loadSettings reads the config file and applies the flags the user set.
func loadSettings(cmd *cobra.Command, opts *options) (*config.Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate home directory: %w", err)
	}

	path := opts.configPath
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = config.DefaultPath(dir)
		}
	}

	settings := config.DefaultSettings(home)
	if path != "" {
		if settings, err = config.Load(path, home); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if err := applyFlags(cmd, opts, settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func applyFlags(cmd *cobra.Command, opts *options, settings *config.Settings) error {
	flags := cmd.Flags()

	if flags.Changed("path") {
		settings.DownloadsPath = opts.path
	}
	if flags.Changed("simultaneous") {
		settings.Simultaneous = opts.simultaneous
	}
	if flags.Changed("tracks") {
		numbers, err := config.ParseTrackNumbers(opts.tracks)
		if err != nil {
			return err
		}
		settings.TrackNumbers = numbers
	}
	if opts.playlist {
		settings.CreatePlaylist = true
	}
	if opts.noTags {
		settings.ModifyTags = false
		settings.EmbedCoverArt = false
	}
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func run(ctx context.Context, out io.Writer, settings *config.Settings, opts *options, albumURL string) error {
	logger := newLogger(opts.verbose)

	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if line, ok := renderEvent(event, opts.verbose); ok {
			fmt.Fprintln(out, line)
		}
	}, download.WithLogger(logger))

	fmt.Fprintln(out, headerStyle.Render("🎵 Album Downloader"))
	fmt.Fprintln(out)

	if err := manager.Initialize(ctx, albumURL); err != nil {
		return err
	}

	if opts.dryRun {
		for _, track := range manager.Album().Tracks {
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("  %s. %s", track.Number, track.Title)))
		}
		fmt.Fprintln(out, infoStyle.Render("[dry run, nothing downloaded]"))
		return nil
	}

	start := time.Now()
	summary, err := manager.StartDownloads(ctx)
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderSummary(summary, time.Since(start)))
	return err
}

// renderEvent formats a progress event, or reports false when it is
// hidden at the current verbosity.
func renderEvent(event download.ProgressEvent, verbose bool) (string, bool) {
	switch event.Level {
	case download.LevelVerbose:
		if !verbose {
			return "", false
		}
		return dimStyle.Render("  " + event.Message), true
	case download.LevelError:
		return errorStyle.Render("✗ " + event.Message), true
	case download.LevelWarning:
		return warningStyle.Render("! " + event.Message), true
	case download.LevelSuccess:
		return successStyle.Render("✓ " + event.Message), true
	default:
		return infoStyle.Render("› " + event.Message), true
	}
}

func renderSummary(s download.Summary, elapsed time.Duration) string {
	line := fmt.Sprintf("Downloaded %d, already present %d, not found %d, failed %d (%s in %s)",
		s.Completed, s.SkippedAlreadyExists, s.SkippedNotFound, s.Failed,
		humanize.Bytes(uint64(s.Bytes)), elapsed.Round(time.Millisecond))
	if s.Failed > 0 {
		return errorStyle.Render(line)
	}
	return successStyle.Render(line)
}

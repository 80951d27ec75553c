package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/album-downloader/internal/config"
	"github.com/handiism/album-downloader/internal/download"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd(context.Background(), &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"-p", "/srv/music", "-t", "1, 3", "--no-tags", "--playlist"}))

	var opts options
	opts.path, _ = cmd.Flags().GetString("path")
	opts.tracks, _ = cmd.Flags().GetString("tracks")
	opts.noTags, _ = cmd.Flags().GetBool("no-tags")
	opts.playlist, _ = cmd.Flags().GetBool("playlist")

	settings := config.DefaultSettings("/home/test")
	settings.Simultaneous = 2 // from a config file; -s was not given
	require.NoError(t, applyFlags(cmd, &opts, settings))

	assert.Equal(t, "/srv/music", settings.DownloadsPath)
	assert.Equal(t, []int{1, 3}, settings.TrackNumbers)
	assert.Equal(t, 2, settings.Simultaneous)
	assert.False(t, settings.ModifyTags)
	assert.False(t, settings.EmbedCoverArt)
	assert.True(t, settings.CreatePlaylist)
}

func TestRootCmd_RejectsBadInput(t *testing.T) {
	missingConfig := filepath.Join(t.TempDir(), "none.toml")

	tests := []struct {
		name string
		args []string
	}{
		{"no url", []string{"--config", missingConfig}},
		{"bad track list", []string{"--config", missingConfig, "-t", "1,x", "https://music.example.com/album/a"}},
		{"zero simultaneous", []string{"--config", missingConfig, "-s", "0", "https://music.example.com/album/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd(context.Background(), &out)
			cmd.SetArgs(tt.args)
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			assert.Error(t, cmd.Execute())
			assert.NotContains(t, out.String(), "Album Downloader", "nothing may start on bad input")
		})
	}
}

func TestRenderEvent(t *testing.T) {
	_, shown := renderEvent(download.ProgressEvent{Message: "Downloaded: 01 - a.mp3", Level: download.LevelVerbose}, false)
	assert.False(t, shown)

	line, shown := renderEvent(download.ProgressEvent{Message: "Downloaded: 01 - a.mp3", Level: download.LevelVerbose}, true)
	assert.True(t, shown)
	assert.Contains(t, line, "01 - a.mp3")

	line, shown = renderEvent(download.ProgressEvent{Message: "gone", Level: download.LevelWarning}, false)
	assert.True(t, shown)
	assert.True(t, strings.Contains(line, "! gone"))
}

func TestRenderSummary(t *testing.T) {
	line := renderSummary(download.Summary{Completed: 3, SkippedNotFound: 1, Bytes: 3_000_000}, 1500*time.Millisecond)

	assert.Contains(t, line, "Downloaded 3")
	assert.Contains(t, line, "not found 1")
	assert.Contains(t, line, "3.0 MB")
}

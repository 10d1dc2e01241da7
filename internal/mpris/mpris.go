//go:build linux

// Package mpris exposes the coordinator on the session bus so desktop
// media controls act as one more widget: they command the engine and
// render its state, owning no playback logic of their own.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/tlehoux/chorus/internal/playback"
)

// Adapter connects a Coordinator to MPRIS over D-Bus.
type Adapter struct {
	coord  *playback.Coordinator
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(coord *playback.Coordinator) (*Adapter, error) {
	a := &Adapter{coord: coord}

	a.server = server.NewServer("chorus", &rootAdapter{}, &playerAdapter{coord: coord})

	// Serve in background; D-Bus failures surface as a dead surface,
	// never as a playback problem.
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "Chorus", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	coord *playback.Coordinator
}

func (p *playerAdapter) Next() error {
	p.coord.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.coord.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.coord.State() == playback.StatePlaying {
		p.coord.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.coord.TogglePlay()
	return nil
}

func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if p.coord.State() != playback.StatePlaying {
		p.coord.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.coord.Snapshot()
	if snap.Duration <= 0 {
		return nil
	}
	target := snap.Position + time.Duration(offset)*time.Microsecond
	p.coord.Seek(float64(target) / float64(snap.Duration))
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	snap := p.coord.Snapshot()
	if snap.Duration <= 0 {
		return nil
	}
	target := time.Duration(position) * time.Microsecond
	p.coord.Seek(float64(target) / float64(snap.Duration))
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Playlists register through widgets, not URIs
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.coord.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StateLoaded, playback.StatePaused, playback.StateError:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.coord.Snapshot()
	if snap.Track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.Track.SourceRef)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   snap.Track.Title,
		Album:   snap.Playlist,
	}
	if snap.Artist != "" {
		meta.Artist = []string{snap.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	return p.coord.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error) {
	snap := p.coord.Snapshot()
	return snap.Index < snap.PlaylistLength-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.coord.Snapshot().Index > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.coord.State().IsActive(), nil
}

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) { return true, nil }

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func formatTrackID(ref string) string {
	h := fnv.New64a()
	h.Write([]byte(ref))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

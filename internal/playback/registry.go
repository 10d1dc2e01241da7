package playback

import (
	"github.com/tlehoux/chorus/internal/playlist"
	"github.com/tlehoux/chorus/internal/waveform"
)

// Meta is the display metadata carried by a registered playlist.
type Meta struct {
	Artist string
	Year   string
}

// registered is one playlist registry entry. The waveform cache lives
// here so it can be preserved when the same name re-registers.
type registered struct {
	name      string
	tracks    []playlist.Track
	meta      Meta
	waveforms map[int]waveform.Data
}

func newRegistered(name string, tracks []playlist.Track, meta Meta) *registered {
	copied := make([]playlist.Track, len(tracks))
	copy(copied, tracks)
	return &registered{
		name:      name,
		tracks:    copied,
		meta:      meta,
		waveforms: make(map[int]waveform.Data),
	}
}

// PlaylistData is the read-only view of a registered playlist handed to
// display consumers.
type PlaylistData struct {
	Name   string
	Tracks []playlist.Track
	Artist string
	Year   string
}

func (r *registered) data() *PlaylistData {
	tracks := make([]playlist.Track, len(r.tracks))
	copy(tracks, r.tracks)
	return &PlaylistData{
		Name:   r.name,
		Tracks: tracks,
		Artist: r.meta.Artist,
		Year:   r.meta.Year,
	}
}

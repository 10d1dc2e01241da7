package playback

import (
	"time"

	"github.com/tlehoux/chorus/internal/playlist"
)

// StateSnapshot is the full externally-visible session state, broadcast
// to state listeners on every session-affecting transition.
type StateSnapshot struct {
	State          State
	Playing        bool
	Track          *playlist.Track
	Index          int
	Playlist       string
	PlaylistLength int
	Position       time.Duration
	Duration       time.Duration
	Artist         string
	Year           string
}

// TimeSnapshot is broadcast to time listeners on every resource tick.
// It is independent of state snapshots so the high-frequency tick path
// never forces a full state recomputation.
type TimeSnapshot struct {
	Position time.Duration
	Duration time.Duration
}

// PlaylistInfo describes one registered playlist in a playlist-change
// broadcast.
type PlaylistInfo struct {
	Name       string
	TrackCount int
	Active     bool
}

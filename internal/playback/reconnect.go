package playback

import (
	"strings"
	"time"

	"github.com/tlehoux/chorus/internal/playlist"
)

// pendingReconnect captures enough of the session before a full
// registry clear to resume the same logical playlist if it re-registers
// under the same name. Created once per clear, consumed at most once.
type pendingReconnect struct {
	name       string
	ref        string // normalized source ref of the in-flight track
	position   time.Duration
	wasPlaying bool
}

// TryReconnect attempts to re-adopt in-flight playback for a playlist
// that re-registered after a full clear.
//
// A pending record for a different name is left untouched: another
// not-yet-checked playlist may still match later. A record for this
// name is consumed by this call whether or not a track matches; a stale
// target cannot be retried after a failed check.
//
// Returns true only when a track in the re-registered playlist matches
// the captured source ref, in which case the session re-adopts the
// playlist at the matched index and a state snapshot is broadcast.
func (c *Coordinator) TryReconnect(name string) bool {
	c.mu.Lock()

	p := c.pending
	if p == nil || p.name != name {
		c.mu.Unlock()
		return false
	}
	c.pending = nil

	reg, ok := c.playlists[name]
	if !ok {
		c.mu.Unlock()
		return false
	}

	match := playlist.NotFound
	for i, t := range reg.tracks {
		// The captured ref may carry a prefix the track ref lacks
		// (absolute vs relative form), so containment, not equality.
		if strings.Contains(p.ref, playlist.NormalizeRef(t.SourceRef)) {
			match = i
			break
		}
	}
	if match == playlist.NotFound {
		c.mu.Unlock()
		return false
	}

	c.session.active = name
	c.session.index = match
	if p.wasPlaying {
		c.session.state = StatePlaying
	} else {
		c.session.state = StatePaused
	}
	c.session.position = c.resource.Position()
	c.lastActive = reg

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.stateNotifier.Notify(snap)
	return true
}

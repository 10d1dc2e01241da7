package playback

import "time"

// session is the single record of what is playing. Exactly one exists
// per Coordinator; it is the only place concurrent playback requests
// are arbitrated.
type session struct {
	active   string // active playlist name, "" when idle
	index    int
	state    State
	position time.Duration
	duration time.Duration
}

func (s session) playing() bool {
	return s.state == StatePlaying
}

// internal/playback/state.go
package playback

// State represents the engine's playback state.
type State int

const (
	// StateIdle means no playlist is active.
	StateIdle State = iota
	// StateLoaded means a playlist and track are selected but the
	// resource is not playing.
	StateLoaded
	StatePlaying
	StatePaused
	// StateError means the resource reported a playback failure. For
	// UI purposes it reads as paused; it stays distinct for
	// diagnostics.
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoaded:
		return "Loaded"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a playlist is selected (any non-idle state).
func (s State) IsActive() bool {
	return s != StateIdle
}

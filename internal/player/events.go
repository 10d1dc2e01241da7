package player

import "time"

// EventKind identifies a resource-originated playback event.
type EventKind int

const (
	// EventStarted fires when the resource actually begins producing
	// audio for the loaded source.
	EventStarted EventKind = iota
	// EventStopped fires when output stops without the track ending
	// (pause, or an external interruption).
	EventStopped
	// EventFinished fires when the loaded source plays to its end.
	EventFinished
	// EventMetadata fires once the source duration becomes known.
	EventMetadata
	// EventTick is the periodic position report while playing.
	EventTick
	// EventError fires when the resource fails to decode or output.
	EventError
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventFinished:
		return "finished"
	case EventMetadata:
		return "metadata"
	case EventTick:
		return "tick"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a resource-originated playback event. Position and Duration
// are filled for every kind that carries timing; Err only for
// EventError.
type Event struct {
	Kind     EventKind
	Position time.Duration
	Duration time.Duration
	Err      error
}

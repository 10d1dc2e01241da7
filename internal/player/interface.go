// internal/player/interface.go
package player

import "time"

// Interface is the contract of the single shared playback resource, for
// dependency injection and testing. All control calls are non-blocking;
// what the resource actually does is observed through Events.
type Interface interface {
	// Load redirects the resource to a new source, stopping any
	// current output. It does not start playback.
	Load(ref string) error
	Play() error
	Pause()
	SeekTo(pos time.Duration)
	Position() time.Duration
	Duration() time.Duration
	Events() <-chan Event
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Beep)(nil)
	_ Interface = (*Mock)(nil)
)

// internal/player/mock.go
package player

import "time"

const mockEventBuffer = 32

// Mock is a test double for the playback resource.
type Mock struct {
	loaded    string
	playing   bool
	position  time.Duration
	duration  time.Duration
	loadErr   error
	playErr   error
	loadCalls []string
	seekCalls []time.Duration
	events    chan Event
}

// NewMock creates a new mock resource for testing.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, mockEventBuffer),
	}
}

func (m *Mock) Load(ref string) error {
	m.loadCalls = append(m.loadCalls, ref)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = ref
	m.playing = false
	m.position = 0
	return nil
}

func (m *Mock) Play() error {
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	return nil
}

func (m *Mock) Pause() { m.playing = false }

func (m *Mock) SeekTo(pos time.Duration) {
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error { return nil }

// Test helpers

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetPosition(pos time.Duration) { m.position = pos }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) Loaded() string { return m.loaded }

func (m *Mock) IsPlaying() bool { return m.playing }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

// Simulate pushes a resource-originated event, as the real resource
// would from its output loop.
func (m *Mock) Simulate(e Event) {
	select {
	case m.events <- e:
	default:
	}
}

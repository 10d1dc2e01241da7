package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	eventBufferSize = 64
	tickInterval    = 500 * time.Millisecond
)

// Beep is the real playback resource, backed by gopxl/beep and the
// system speaker. Exactly one should exist per process: the speaker is
// a global device.
type Beep struct {
	mu       sync.Mutex
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File

	events chan Event
	done   chan struct{}
	closed bool
}

var speakerInitialized bool

// NewBeep creates the beep-backed resource and starts its tick loop.
func NewBeep() *Beep {
	b := &Beep{
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	go b.tickLoop()
	return b
}

// Load opens and decodes the file at ref, replacing whatever was
// loaded. Output stops; Play starts the new source.
func (b *Beep) Load(ref string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	ext := strings.ToLower(filepath.Ext(ref))
	f, err := os.Open(ref)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		f.Close()
		return err
	}

	if !speakerInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		speakerInitialized = true
	}

	b.streamer = streamer
	b.format = format
	b.file = f

	b.emit(Event{
		Kind:     EventMetadata,
		Duration: format.SampleRate.D(streamer.Len()),
	})
	return nil
}

// Play starts or resumes output of the loaded source.
func (b *Beep) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streamer == nil {
		return fmt.Errorf("no source loaded")
	}

	if b.ctrl != nil {
		speaker.Lock()
		b.ctrl.Paused = false
		speaker.Unlock()
	} else {
		b.ctrl = &beep.Ctrl{
			Streamer: beep.Seq(b.streamer, beep.Callback(func() {
				b.emit(Event{Kind: EventFinished})
			})),
		}
		speaker.Play(b.ctrl)
	}

	b.emit(Event{Kind: EventStarted, Position: b.positionLocked(), Duration: b.durationLocked()})
	return nil
}

// Pause pauses output, keeping the source loaded.
func (b *Beep) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctrl == nil || b.ctrl.Paused {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()

	b.emit(Event{Kind: EventStopped, Position: b.positionLocked(), Duration: b.durationLocked()})
}

// SeekTo moves output to an absolute position, clamped to the source
// bounds.
func (b *Beep) SeekTo(pos time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streamer == nil {
		return
	}

	n := b.format.SampleRate.N(pos)
	n = max(n, 0)
	if maxN := b.streamer.Len() - 1; n > maxN {
		n = maxN
	}

	speaker.Lock()
	_ = b.streamer.Seek(n)
	speaker.Unlock()
}

// Position returns the current output position.
func (b *Beep) Position() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.positionLocked()
}

// Duration returns the loaded source duration.
func (b *Beep) Duration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.durationLocked()
}

// Events returns the resource event channel.
func (b *Beep) Events() <-chan Event {
	return b.events
}

// Close stops output and the tick loop.
func (b *Beep) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.stopLocked()
	close(b.done)
	return nil
}

func (b *Beep) positionLocked() time.Duration {
	if b.streamer == nil {
		return 0
	}
	// Read without the speaker lock; may be slightly stale but cannot
	// deadlock against the output goroutine.
	return b.format.SampleRate.D(b.streamer.Position())
}

func (b *Beep) durationLocked() time.Duration {
	if b.streamer == nil {
		return 0
	}
	return b.format.SampleRate.D(b.streamer.Len())
}

func (b *Beep) stopLocked() {
	if b.ctrl != nil {
		speaker.Clear()
		b.ctrl = nil
	}
	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}
	if b.file != nil {
		b.file.Close()
		b.file = nil
	}
}

func (b *Beep) tickLoop() {
	t := time.NewTicker(tickInterval)
	defer t.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			b.mu.Lock()
			playing := b.ctrl != nil && !b.ctrl.Paused
			pos := b.positionLocked()
			dur := b.durationLocked()
			b.mu.Unlock()

			if playing {
				b.emit(Event{Kind: EventTick, Position: pos, Duration: dur})
			}
		}
	}
}

// emit sends an event without blocking; a slow consumer drops ticks
// rather than stalling the audio path.
func (b *Beep) emit(e Event) {
	select {
	case b.events <- e:
	default:
	}
}

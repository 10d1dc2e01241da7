// Package playback coordinates any number of registered playlists over
// a single shared playback resource: at most one playlist is audible at
// a time, and every subscribed consumer observes the same session.
package playback

import (
	"sync"
	"time"

	"github.com/tlehoux/chorus/internal/broadcast"
	"github.com/tlehoux/chorus/internal/player"
	"github.com/tlehoux/chorus/internal/playlist"
	"github.com/tlehoux/chorus/internal/waveform"
)

const defaultRestartThreshold = 3 * time.Second

// Coordinator owns the playlist registry, the session, and the shared
// resource. Construct one explicitly and inject it into consumers;
// multiple independent instances can coexist (each with its own
// resource).
type Coordinator struct {
	mu sync.Mutex

	resource player.Interface
	store    *waveform.Store // optional write-through waveform cache

	playlists map[string]*registered
	order     []string

	session    session
	lastActive *registered // display fallback while a cleared playlist keeps playing

	pending *pendingReconnect

	restartThreshold time.Duration

	stateNotifier    *broadcast.Notifier[StateSnapshot]
	timeNotifier     *broadcast.Notifier[TimeSnapshot]
	playlistNotifier *broadcast.Notifier[[]PlaylistInfo]
	clearHooks       *broadcast.Notifier[struct{}]

	done   chan struct{}
	closed bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithWaveformStore makes computed waveforms survive registry clears
// and process restarts.
func WithWaveformStore(s *waveform.Store) Option {
	return func(c *Coordinator) { c.store = s }
}

// WithRestartThreshold overrides how far into a track Previous restarts
// it instead of going back.
func WithRestartThreshold(d time.Duration) Option {
	return func(c *Coordinator) { c.restartThreshold = d }
}

// New creates a coordinator around the given resource.
func New(resource player.Interface, opts ...Option) *Coordinator {
	c := &Coordinator{
		resource:         resource,
		playlists:        make(map[string]*registered),
		session:          session{index: playlist.NotFound},
		restartThreshold: defaultRestartThreshold,
		stateNotifier:    broadcast.New[StateSnapshot](),
		timeNotifier:     broadcast.New[TimeSnapshot](),
		playlistNotifier: broadcast.New[[]PlaylistInfo](),
		clearHooks:       broadcast.New[struct{}](),
		done:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start pumps resource events into the engine in the background. Hosts
// that run their own event loop can skip Start and deliver events via
// HandleEvent instead.
func (c *Coordinator) Start() {
	go func() {
		for {
			select {
			case <-c.done:
				return
			case e, ok := <-c.resource.Events():
				if !ok {
					return
				}
				c.HandleEvent(e)
			}
		}
	}()
}

// Close stops the event pump and the resource.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()
	return c.resource.Close()
}

// Subscriptions

// AddStateListener registers fn for full state snapshots and returns
// its disposer.
func (c *Coordinator) AddStateListener(fn func(StateSnapshot)) func() {
	return c.stateNotifier.Add(fn)
}

// AddTimeListener registers fn for time updates and returns its
// disposer.
func (c *Coordinator) AddTimeListener(fn func(TimeSnapshot)) func() {
	return c.timeNotifier.Add(fn)
}

// AddPlaylistListener registers fn for registry changes and returns its
// disposer.
func (c *Coordinator) AddPlaylistListener(fn func([]PlaylistInfo)) func() {
	return c.playlistNotifier.Add(fn)
}

// OnClear registers a teardown hook invoked (once, then dropped) when
// the registry is cleared, so widgets can release their subscriptions
// before teardown. Returns a disposer.
func (c *Coordinator) OnClear(fn func()) func() {
	return c.clearHooks.Add(func(struct{}) { fn() })
}

// Registry operations

// Register inserts or replaces the playlist under name. A previous
// entry's waveform cache is carried over so transient re-registrations
// do not discard computed waveforms. Broadcasts a playlist change.
func (c *Coordinator) Register(name string, tracks []playlist.Track, meta Meta) {
	c.mu.Lock()
	reg := newRegistered(name, tracks, meta)
	if old, ok := c.playlists[name]; ok {
		reg.waveforms = old.waveforms
	} else {
		c.order = append(c.order, name)
	}
	c.playlists[name] = reg
	if c.session.active == name {
		c.lastActive = reg
	}
	infos := c.playlistInfosLocked()
	c.mu.Unlock()

	c.playlistNotifier.Notify(infos)
}

// Unregister removes the playlist under name; unknown names are a
// silent no-op. If the playlist is active, playback pauses and the
// session detaches first, so the resource never references a track
// list whose metadata is gone. CurrentTrack reports nil afterwards.
func (c *Coordinator) Unregister(name string) {
	c.mu.Lock()
	if _, ok := c.playlists[name]; !ok {
		c.mu.Unlock()
		return
	}

	var stateSnap *StateSnapshot
	if c.session.active == name {
		c.resource.Pause()
		c.session.active = ""
		c.session.index = playlist.NotFound
		c.session.state = StateIdle
		c.lastActive = nil
		snap := c.snapshotLocked()
		stateSnap = &snap
	}

	delete(c.playlists, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	infos := c.playlistInfosLocked()
	c.mu.Unlock()

	if stateSnap != nil {
		c.stateNotifier.Notify(*stateSnap)
	}
	c.playlistNotifier.Notify(infos)
}

// ClearPlayers removes every registry entry without stopping the
// resource: a full clear is a transient teardown (view navigation), not
// an intent to stop music. Teardown hooks run first so widget
// subscriptions are released instead of accumulating across
// navigations; a reconnect record is then captured from the session so
// the same playlist can re-adopt playback after it re-registers.
func (c *Coordinator) ClearPlayers() {
	c.clearHooks.Notify(struct{}{})
	c.clearHooks.Reset()

	c.mu.Lock()
	if t := c.currentTrackLocked(); t != nil {
		c.pending = &pendingReconnect{
			name:       c.session.active,
			ref:        playlist.NormalizeRef(t.SourceRef),
			position:   c.resource.Position(),
			wasPlaying: c.session.playing(),
		}
	}
	c.playlists = make(map[string]*registered)
	c.order = nil
	c.mu.Unlock()
}

// SetWaveform caches waveform data for a track; unknown names and
// out-of-range indexes are silent no-ops. Samples are clamped to the
// 0..1 range on the way in.
func (c *Coordinator) SetWaveform(name string, index int, data waveform.Data) {
	c.mu.Lock()
	reg, ok := c.playlists[name]
	if !ok || index < 0 || index >= len(reg.tracks) {
		c.mu.Unlock()
		return
	}
	clamped := data.Clamp()
	reg.waveforms[index] = clamped
	ref := playlist.NormalizeRef(reg.tracks[index].SourceRef)
	store := c.store
	c.mu.Unlock()

	if store != nil {
		// Persistence is an accelerator; a failed write is not a
		// playback problem.
		_ = store.Put(ref, clamped)
	}
}

// Waveform returns cached waveform data for a track, or nil. A miss in
// the in-memory cache falls through to the persistent store when one is
// configured.
func (c *Coordinator) Waveform(name string, index int) waveform.Data {
	c.mu.Lock()
	reg, ok := c.playlists[name]
	if !ok || index < 0 || index >= len(reg.tracks) {
		c.mu.Unlock()
		return nil
	}
	if d, ok := reg.waveforms[index]; ok {
		c.mu.Unlock()
		return d
	}
	ref := playlist.NormalizeRef(reg.tracks[index].SourceRef)
	store := c.store
	c.mu.Unlock()

	if store == nil {
		return nil
	}
	d, err := store.Get(ref)
	if err != nil || d == nil {
		return nil
	}

	c.mu.Lock()
	if cur, ok := c.playlists[name]; ok && cur == reg {
		reg.waveforms[index] = d
	}
	c.mu.Unlock()
	return d
}

// PlaylistData returns a read-only view of a registered playlist, or
// the last-known snapshot when the playlist was cleared but is still
// the one playing. Nil otherwise.
func (c *Coordinator) PlaylistData(name string) *PlaylistData {
	c.mu.Lock()
	defer c.mu.Unlock()
	if reg, ok := c.playlists[name]; ok {
		return reg.data()
	}
	if c.session.active == name && c.lastActive != nil && c.lastActive.name == name {
		return c.lastActive.data()
	}
	return nil
}

// ActivePlaylistData returns the view of whatever playlist the session
// currently plays, or nil when idle.
func (c *Coordinator) ActivePlaylistData() *PlaylistData {
	c.mu.Lock()
	active := c.session.active
	c.mu.Unlock()
	if active == "" {
		return nil
	}
	return c.PlaylistData(active)
}

// Playback operations

// PlayPlaylist makes name the active playlist and starts playback at
// startIndex. This always wins arbitration: the shared resource is
// redirected, implicitly stopping whatever played before. Unknown names
// and out-of-range indexes are silent no-ops.
func (c *Coordinator) PlayPlaylist(name string, startIndex int) {
	c.mu.Lock()
	reg, ok := c.playlists[name]
	if !ok || startIndex < 0 || startIndex >= len(reg.tracks) {
		c.mu.Unlock()
		return
	}

	c.session.active = name
	c.lastActive = reg
	c.loadAndPlayLocked(startIndex, true)

	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.stateNotifier.Notify(snap)
}

// TogglePlay pauses a playing session or resumes a paused one. No-op
// when idle.
func (c *Coordinator) TogglePlay() {
	c.mu.Lock()
	if c.session.state == StateIdle {
		c.mu.Unlock()
		return
	}

	if c.session.playing() {
		c.resource.Pause()
		c.session.state = StatePaused
	} else {
		if err := c.resource.Play(); err != nil {
			c.session.state = StateError
		} else {
			c.session.state = StatePlaying
		}
	}

	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.stateNotifier.Notify(snap)
}

// Next advances to the next track and plays it. On the last track it
// loads index 0 without playing: end of playlist stops rather than
// looping audibly.
func (c *Coordinator) Next() {
	c.mu.Lock()
	if !c.advanceLocked() {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.stateNotifier.Notify(snap)
}

// Previous restarts the current track when more than the restart
// threshold has played; otherwise it steps back one track, resuming
// playback only if the session was playing. At the first track under
// the threshold it is a no-op.
func (c *Coordinator) Previous() {
	c.mu.Lock()
	entry := c.activeEntryLocked()
	if entry == nil {
		c.mu.Unlock()
		return
	}

	if c.resource.Position() > c.restartThreshold {
		c.resource.SeekTo(0)
		c.session.position = 0
	} else if c.session.index > 0 {
		c.loadAndPlayLocked(c.session.index-1, c.session.playing())
	} else {
		c.mu.Unlock()
		return
	}

	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.stateNotifier.Notify(snap)
}

// Seek moves playback to percent (0..1) of the known duration. No-op
// while the duration is unknown.
func (c *Coordinator) Seek(percent float64) {
	c.mu.Lock()
	dur := c.session.duration
	if dur <= 0 {
		dur = c.resource.Duration()
	}
	if dur <= 0 {
		c.mu.Unlock()
		return
	}

	switch {
	case percent < 0:
		percent = 0
	case percent > 1:
		percent = 1
	}
	pos := time.Duration(percent * float64(dur))
	c.resource.SeekTo(pos)
	c.session.position = pos
	c.session.duration = dur

	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.stateNotifier.Notify(snap)
}

// HandleEvent feeds one resource-originated event into the session.
// These events are the only path by which the session's playing flag
// tracks resource truth rather than requested truth.
func (c *Coordinator) HandleEvent(e player.Event) {
	c.mu.Lock()

	switch e.Kind {
	case player.EventTick:
		c.session.position = e.Position
		if e.Duration > 0 {
			c.session.duration = e.Duration
		}
		t := TimeSnapshot{Position: c.session.position, Duration: c.session.duration}
		c.mu.Unlock()
		c.timeNotifier.Notify(t)
		return

	case player.EventStarted:
		if c.session.playing() {
			c.mu.Unlock()
			return
		}
		c.session.state = StatePlaying

	case player.EventStopped:
		if !c.session.playing() {
			c.mu.Unlock()
			return
		}
		c.session.state = StatePaused

	case player.EventFinished:
		if !c.advanceLocked() {
			c.mu.Unlock()
			return
		}

	case player.EventMetadata:
		c.session.duration = e.Duration

	case player.EventError:
		c.session.state = StateError
	}

	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.stateNotifier.Notify(snap)
}

// Queries

// CurrentTrack returns a copy of the in-flight track, or nil when idle
// or detached.
func (c *Coordinator) CurrentTrack() *playlist.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTrackLocked()
}

// State returns the session state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.state
}

// Snapshot returns the current full state snapshot without waiting for
// a broadcast.
func (c *Coordinator) Snapshot() StateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Internals (all require c.mu held)

// loadAndPlayLocked loads the track at index from the active entry and
// optionally starts playback. Load or play failure lands in StateError
// with the failure reaching listeners through the snapshot, never the
// caller.
func (c *Coordinator) loadAndPlayLocked(index int, play bool) {
	entry := c.activeEntryLocked()
	if entry == nil || index < 0 || index >= len(entry.tracks) {
		return
	}

	c.session.index = index
	c.session.position = 0

	if err := c.resource.Load(playlist.NormalizeRef(entry.tracks[index].SourceRef)); err != nil {
		c.session.state = StateError
		return
	}
	c.session.duration = c.resource.Duration()
	c.session.state = StateLoaded

	if !play {
		return
	}
	if err := c.resource.Play(); err != nil {
		c.session.state = StateError
		return
	}
	c.session.state = StatePlaying
}

// advanceLocked implements the shared Next / end-of-track transition.
// Returns false when there is nothing to advance.
func (c *Coordinator) advanceLocked() bool {
	entry := c.activeEntryLocked()
	if entry == nil || len(entry.tracks) == 0 {
		return false
	}

	if c.session.index < len(entry.tracks)-1 {
		c.loadAndPlayLocked(c.session.index+1, true)
	} else {
		// Wrap the selection to the top but stay silent.
		c.loadAndPlayLocked(0, false)
	}
	return true
}

// activeEntryLocked resolves the active playlist: the registry entry if
// still registered, else the detached last-active snapshot kept across
// a transient clear.
func (c *Coordinator) activeEntryLocked() *registered {
	if c.session.active == "" {
		return nil
	}
	if reg, ok := c.playlists[c.session.active]; ok {
		return reg
	}
	if c.lastActive != nil && c.lastActive.name == c.session.active {
		return c.lastActive
	}
	return nil
}

func (c *Coordinator) currentTrackLocked() *playlist.Track {
	entry := c.activeEntryLocked()
	if entry == nil {
		return nil
	}
	if c.session.index < 0 || c.session.index >= len(entry.tracks) {
		return nil
	}
	t := entry.tracks[c.session.index]
	return &t
}

func (c *Coordinator) snapshotLocked() StateSnapshot {
	snap := StateSnapshot{
		State:    c.session.state,
		Playing:  c.session.playing(),
		Index:    c.session.index,
		Playlist: c.session.active,
		Position: c.session.position,
		Duration: c.session.duration,
	}
	if entry := c.activeEntryLocked(); entry != nil {
		snap.PlaylistLength = len(entry.tracks)
		snap.Artist = entry.meta.Artist
		snap.Year = entry.meta.Year
	}
	snap.Track = c.currentTrackLocked()
	return snap
}

func (c *Coordinator) playlistInfosLocked() []PlaylistInfo {
	infos := make([]PlaylistInfo, 0, len(c.order))
	for _, name := range c.order {
		reg, ok := c.playlists[name]
		if !ok {
			continue
		}
		infos = append(infos, PlaylistInfo{
			Name:       name,
			TrackCount: len(reg.tracks),
			Active:     c.session.active == name,
		})
	}
	return infos
}

package playerbar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlehoux/chorus/internal/playback"
	"github.com/tlehoux/chorus/internal/player"
	"github.com/tlehoux/chorus/internal/playlist"
	"github.com/tlehoux/chorus/internal/waveform"
)

func newBar(t *testing.T) (Model, *playback.Coordinator) {
	t.Helper()
	c := playback.New(player.NewMock())
	t.Cleanup(func() { _ = c.Close() })
	c.Register("mix", []playlist.Track{
		{Title: "Blue Train", SourceRef: "/m/1.mp3"},
		{Title: "Naima", SourceRef: "/m/2.mp3"},
	}, playback.Meta{Artist: "Coltrane", Year: "1957"})
	return New(c), c
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{61 * time.Second, "1:01"},
		{10 * time.Minute, "10:00"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestView_IdleShowsNothingPlaying(t *testing.T) {
	m, _ := newBar(t)
	if !strings.Contains(m.View(), "nothing playing") {
		t.Error("idle view should say nothing playing")
	}
}

func TestUpdate_StateMsgRendersTrack(t *testing.T) {
	m, c := newBar(t)
	c.PlayPlaylist("mix", 0)

	m, _ = m.Update(StateMsg(c.Snapshot()))
	view := m.View()

	for _, want := range []string{"Blue Train", "Coltrane", "(1957)", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestUpdate_SpaceTogglesPlayback(t *testing.T) {
	m, c := newBar(t)
	c.PlayPlaylist("mix", 0)
	m, _ = m.Update(StateMsg(c.Snapshot()))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})

	if c.State() != playback.StatePaused {
		t.Errorf("state = %v, want Paused after space", c.State())
	}
}

func TestUpdate_TimeMsgMovesProgress(t *testing.T) {
	m, c := newBar(t)
	c.PlayPlaylist("mix", 0)
	m, _ = m.Update(StateMsg(c.Snapshot()))
	m, _ = m.Update(TimeMsg{Position: 30 * time.Second, Duration: time.Minute})

	view := m.View()
	if !strings.Contains(view, "0:30") || !strings.Contains(view, "1:00") {
		t.Errorf("view missing updated times:\n%s", view)
	}
}

func TestView_RendersCachedWaveform(t *testing.T) {
	m, c := newBar(t)
	c.SetWaveform("mix", 0, waveform.Data{0, 0.5, 1})
	c.PlayPlaylist("mix", 0)
	m, _ = m.Update(StateMsg(c.Snapshot()))

	if !strings.ContainsRune(m.View(), '█') {
		t.Error("view should render the cached waveform envelope")
	}
}

func TestSubscribe_ClearReleasesListeners(t *testing.T) {
	m, c := newBar(t)

	received := 0
	m.Subscribe(func(tea.Msg) { received++ })

	c.PlayPlaylist("mix", 0)
	if received == 0 {
		t.Fatal("subscription delivered nothing")
	}

	before := received
	c.ClearPlayers()

	// Listeners were released by the teardown hook: later broadcasts
	// must not reach this widget.
	c.Register("mix", []playlist.Track{{Title: "x", SourceRef: "/m/1.mp3"}}, playback.Meta{})
	c.PlayPlaylist("mix", 0)

	if received != before {
		t.Errorf("received %d messages after teardown, want none", received-before)
	}
}

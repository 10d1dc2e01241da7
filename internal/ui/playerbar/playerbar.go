// Package playerbar is a terminal widget over the coordination engine.
// It owns no playback logic: it issues commands and renders the state
// and time snapshots delivered to its subscriptions.
package playerbar

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tlehoux/chorus/internal/playback"
)

// StateMsg carries a state snapshot into the bubbletea loop.
type StateMsg playback.StateSnapshot

// TimeMsg carries a time snapshot into the bubbletea loop.
type TimeMsg playback.TimeSnapshot

const seekStep = 0.05

// Model renders the session and maps keys to engine commands.
type Model struct {
	coord *playback.Coordinator

	snap  playback.StateSnapshot
	time  playback.TimeSnapshot
	width int
}

// New creates a player bar over coord.
func New(coord *playback.Coordinator) Model {
	return Model{coord: coord, width: 80}
}

// Subscribe registers the widget's listeners, forwarding snapshots into
// the program via send. The disposers are handed to the engine's clear
// hook so a registry teardown releases them instead of leaking them.
func (m *Model) Subscribe(send func(tea.Msg)) {
	disposeState := m.coord.AddStateListener(func(s playback.StateSnapshot) {
		send(StateMsg(s))
	})
	disposeTime := m.coord.AddTimeListener(func(t playback.TimeSnapshot) {
		send(TimeMsg(t))
	})
	m.coord.OnClear(func() {
		disposeState()
		disposeTime()
	})
}

// SetWidth sets the render width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Update handles snapshots and playback keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.snap = playback.StateSnapshot(msg)
		m.time = playback.TimeSnapshot{Position: m.snap.Position, Duration: m.snap.Duration}

	case TimeMsg:
		m.time = playback.TimeSnapshot(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			m.coord.TogglePlay()
		case "n":
			m.coord.Next()
		case "b":
			m.coord.Previous()
		case "left":
			m.seekBy(-seekStep)
		case "right":
			m.seekBy(seekStep)
		}
	}
	return m, nil
}

func (m Model) seekBy(delta float64) {
	if m.time.Duration <= 0 {
		return
	}
	current := float64(m.time.Position) / float64(m.time.Duration)
	m.coord.Seek(current + delta)
}

// View renders the bar: status and track line, waveform (when cached),
// and a progress bar.
func (m Model) View() string {
	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}

	lines := m.trackLine()
	if wave := m.waveLine(inner); wave != "" {
		lines += "\n" + wave
	}
	lines += "\n" + m.progressLine(inner)

	return barStyle.Width(inner + 2).Render(lines)
}

func (m Model) trackLine() string {
	if m.snap.Track == nil {
		return mutedStyle.Render("nothing playing")
	}

	line := titleStyle.Render(m.snap.Track.Title)
	if m.snap.Artist != "" {
		line += mutedStyle.Render(" — " + m.snap.Artist)
	}
	if m.snap.Year != "" {
		line += mutedStyle.Render(" (" + m.snap.Year + ")")
	}
	line += mutedStyle.Render(fmt.Sprintf("  [%d/%d]", m.snap.Index+1, m.snap.PlaylistLength))
	if m.snap.State == playback.StateError {
		line += errorStyle.Render("  playback error")
	}
	return line
}

var waveGlyphs = []rune("▁▂▃▄▅▆▇█")

// waveLine renders the cached waveform, resampled to the bar width.
// Empty when no waveform has been computed for the current track.
func (m Model) waveLine(width int) string {
	if m.snap.Track == nil {
		return ""
	}
	data := m.coord.Waveform(m.snap.Playlist, m.snap.Index)
	if data.Empty() {
		return ""
	}

	out := make([]rune, width)
	for i := range out {
		sample := data[i*len(data)/width]
		level := int(sample * float64(len(waveGlyphs)-1))
		out[i] = waveGlyphs[level]
	}
	return waveStyle.Render(string(out))
}

// progressLine renders: ▶  1:23  ▓▓▓░░░  4:56
func (m Model) progressLine(width int) string {
	status := "▶"
	if !m.snap.Playing {
		status = "⏸"
	}

	posStr := formatDuration(m.time.Position)
	durStr := formatDuration(m.time.Duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if m.time.Duration > 0 {
		ratio = float64(m.time.Position) / float64(m.time.Duration)
	}
	filled := int(ratio * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			bar += filledBlock
		} else {
			bar += emptyBlock
		}
	}
	return status + "  " + posStr + "  " + bar + "  " + durStr
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tlehoux/chorus/internal/config"
	"github.com/tlehoux/chorus/internal/errmsg"
	"github.com/tlehoux/chorus/internal/library"
	"github.com/tlehoux/chorus/internal/mpris"
	"github.com/tlehoux/chorus/internal/notify"
	"github.com/tlehoux/chorus/internal/playback"
	"github.com/tlehoux/chorus/internal/player"
	"github.com/tlehoux/chorus/internal/ui/playerbar"
	"github.com/tlehoux/chorus/internal/waveform"
	"github.com/tlehoux/chorus/internal/wavegen"
)

const playlistName = "library"

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type waveformReadyMsg struct{}

// sendReadyMsg hands the program's Send into the model so widget
// remounts can resubscribe.
type sendReadyMsg struct {
	send func(tea.Msg)
}

type model struct {
	coord    *playback.Coordinator
	bar      playerbar.Model
	scan     *library.Result
	notifier notify.Notifier
	send     func(tea.Msg)

	lastRef string
	noteID  uint32
	status  string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.SetWidth(msg.Width)
		return m, nil

	case playerbar.StateMsg:
		var cmd tea.Cmd
		m.bar, _ = m.bar.Update(msg)
		snap := playback.StateSnapshot(msg)
		if snap.Track != nil && snap.Track.SourceRef != m.lastRef {
			m.lastRef = snap.Track.SourceRef
			m.announce(snap)
			cmd = m.ensureWaveform(snap)
		}
		return m, cmd

	case playerbar.TimeMsg:
		m.bar, _ = m.bar.Update(msg)
		return m, nil

	case waveformReadyMsg:
		return m, nil

	case sendReadyMsg:
		m.send = msg.send
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.coord.PlayPlaylist(playlistName, 0)
			return m, nil
		case "r":
			// Simulated view navigation: full registry teardown, then
			// the remounting widget re-registers and reconnects.
			m.coord.ClearPlayers()
			m.coord.Register(playlistName, m.scan.Tracks, playback.Meta{Artist: m.scan.Artist, Year: m.scan.Year})
			m.bar.Subscribe(m.send)
			if m.coord.TryReconnect(playlistName) {
				m.status = "remounted, playback reconnected"
			} else {
				m.status = "remounted"
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// announce shows a desktop notification for the track now in flight,
// replacing the previous one.
func (m *model) announce(snap playback.StateSnapshot) {
	if m.notifier == nil {
		return
	}
	id, err := m.notifier.Notify(notify.Notification{
		Title:      snap.Track.Title,
		Body:       snap.Artist,
		ReplacesID: m.noteID,
	})
	if err == nil && id != 0 {
		m.noteID = id
	}
}

// ensureWaveform computes the envelope for the current track in the
// background when no cache (memory or store) already has it.
func (m model) ensureWaveform(snap playback.StateSnapshot) tea.Cmd {
	coord, name, index := m.coord, snap.Playlist, snap.Index
	ref := snap.Track.SourceRef
	return func() tea.Msg {
		if coord.Waveform(name, index) != nil {
			return nil
		}
		data, err := wavegen.FromFile(ref, wavegen.DefaultBuckets)
		if err != nil {
			return nil
		}
		coord.SetWaveform(name, index, data)
		return waveformReadyMsg{}
	}
}

func (m model) View() string {
	header := headerStyle.Render("chorus") +
		helpStyle.Render(fmt.Sprintf("  %s tracks", humanize.Comma(int64(len(m.scan.Tracks)))))
	help := helpStyle.Render("space play/pause · n next · b previous · ←/→ seek · enter play · r remount · q quit")
	if m.status != "" {
		help += helpStyle.Render("  — " + m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.bar.View(), help)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	folder := cfg.MusicFolder
	if folder == "" {
		if folder, err = os.Getwd(); err != nil {
			fatal(errmsg.Format(errmsg.OpInitialize, err))
		}
	}

	scan, err := library.Scan(folder)
	if err != nil {
		fatal(errmsg.FormatWith(errmsg.OpPlaylistScan, folder, err))
	}

	opts := []playback.Option{playback.WithRestartThreshold(cfg.GetRestartThreshold())}
	if cfg.WaveformCacheEnabled() {
		// Cache failures are non-fatal: envelopes just get recomputed.
		if store, err := waveform.Open(); err == nil {
			opts = append(opts, playback.WithWaveformStore(store))
			defer store.Close()
		}
	}

	coord := playback.New(player.NewBeep(), opts...)
	coord.Start()
	defer coord.Close()

	coord.Register(playlistName, scan.Tracks, playback.Meta{Artist: scan.Artist, Year: scan.Year})

	if cfg.MprisEnabled() {
		if adapter, err := mpris.New(coord); err == nil {
			defer adapter.Close()
		}
	}

	notifier, _ := notify.New()

	m := model{
		coord:    coord,
		bar:      playerbar.New(coord),
		scan:     scan,
		notifier: notifier,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	p.Send(sendReadyMsg{send: p.Send})
	m.bar.Subscribe(p.Send)

	if _, err := p.Run(); err != nil {
		fatal(errmsg.Format(errmsg.OpInitialize, err))
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

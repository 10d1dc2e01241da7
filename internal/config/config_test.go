package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "tilde expands to home", input: "~/music", expected: filepath.Join(home, "music")},
		{name: "absolute path unchanged", input: "/usr/local/music", expected: "/usr/local/music"},
		{name: "relative path unchanged", input: "music/albums", expected: "music/albums"},
		{name: "empty string unchanged", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}
	if last := paths[len(paths)-1]; last != "config.toml" {
		t.Errorf("last config path = %q, want config.toml (pwd wins)", last)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if !cfg.WaveformCacheEnabled() {
		t.Error("waveform cache should default to enabled")
	}
	if !cfg.MprisEnabled() {
		t.Error("mpris should default to enabled")
	}
	if got := cfg.GetRestartThreshold(); got != 3*time.Second {
		t.Errorf("GetRestartThreshold() = %v, want 3s", got)
	}
}

func TestExplicitToggles(t *testing.T) {
	off := false
	cfg := &Config{WaveformCache: &off, Mpris: &off, RestartThreshold: 1.5}

	if cfg.WaveformCacheEnabled() {
		t.Error("waveform cache explicitly disabled")
	}
	if cfg.MprisEnabled() {
		t.Error("mpris explicitly disabled")
	}
	if got := cfg.GetRestartThreshold(); got != 1500*time.Millisecond {
		t.Errorf("GetRestartThreshold() = %v, want 1.5s", got)
	}
}

func TestLoad_ReadsLocalConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
music_folder = "/srv/music"
restart_threshold = 5.0
waveform_cache = false
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MusicFolder != "/srv/music" {
		t.Errorf("MusicFolder = %q, want /srv/music", cfg.MusicFolder)
	}
	if got := cfg.GetRestartThreshold(); got != 5*time.Second {
		t.Errorf("GetRestartThreshold() = %v, want 5s", got)
	}
	if cfg.WaveformCacheEnabled() {
		t.Error("waveform_cache = false in file, WaveformCacheEnabled() = true")
	}
}

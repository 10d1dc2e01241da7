package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	MusicFolder string `koanf:"music_folder"` // playlist source folder; empty means cwd

	// Waveform cache (sqlite, XDG data dir); on by default
	WaveformCache *bool `koanf:"waveform_cache"`

	// How far into a track "previous" restarts it instead of stepping
	// back, in seconds
	RestartThreshold float64 `koanf:"restart_threshold"`

	// MPRIS D-Bus surface; on by default (Linux only)
	Mpris *bool `koanf:"mpris"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.MusicFolder != "" {
		cfg.MusicFolder = expandPath(cfg.MusicFolder)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/chorus/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chorus", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// WaveformCacheEnabled returns whether the persistent waveform cache is
// on (default true).
func (c *Config) WaveformCacheEnabled() bool {
	return c.WaveformCache == nil || *c.WaveformCache
}

// MprisEnabled returns whether the MPRIS surface is on (default true).
func (c *Config) MprisEnabled() bool {
	return c.Mpris == nil || *c.Mpris
}

// GetRestartThreshold returns the previous-restart threshold with the
// default applied.
func (c *Config) GetRestartThreshold() time.Duration {
	if c.RestartThreshold <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.RestartThreshold * float64(time.Second))
}

// Package library builds playlist track lists from folders of audio
// files.
package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/tlehoux/chorus/internal/playlist"
)

// Result is a scanned folder ready to register.
type Result struct {
	Tracks []playlist.Track
	Artist string
	Year   string
}

// Scan walks dir for playable audio files and builds tracks in stable
// path order. Titles come from embedded tags where readable, otherwise
// from the file name; artist and year come from the first file that
// carries them.
func Scan(dir string) (*Result, error) {
	res := &Result{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".mp3", ".flac", ".wav":
		default:
			return nil
		}

		title, artist, year := readTags(path)
		if title == "" {
			title = fallbackTitle(path)
		}
		if res.Artist == "" {
			res.Artist = artist
		}
		if res.Year == "" {
			res.Year = year
		}
		res.Tracks = append(res.Tracks, playlist.Track{Title: title, SourceRef: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(res.Tracks, func(i, j int) bool {
		return res.Tracks[i].SourceRef < res.Tracks[j].SourceRef
	})
	return res, nil
}

func readTags(path string) (title, artist, year string) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", ""
	}
	if y := m.Year(); y > 0 {
		year = strconv.Itoa(y)
	}
	return m.Title(), m.Artist(), year
}

func fallbackTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

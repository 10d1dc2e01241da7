package waveform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "waveforms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := Data{0.1, 0.5, 0.9}
	require.NoError(t, s.Put("/music/a.mp3", want))

	got, err := s.Get("/music/a.mp3")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Get("/nope.mp3")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_PutReplacesExisting(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("/a.mp3", Data{0.2}))
	require.NoError(t, s.Put("/a.mp3", Data{0.7, 0.8}))

	got, err := s.Get("/a.mp3")
	require.NoError(t, err)
	require.Equal(t, Data{0.7, 0.8}, got)
}

func TestStore_DeleteAbsentIsNoError(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Delete("/ghost.mp3"))

	require.NoError(t, s.Put("/a.mp3", Data{0.3}))
	require.NoError(t, s.Delete("/a.mp3"))

	got, err := s.Get("/a.mp3")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestData_Clamp(t *testing.T) {
	d := Data{-0.5, 0.25, 1.5}
	got := d.Clamp()
	require.Equal(t, Data{0, 0.25, 1}, got)
	// Original untouched.
	require.Equal(t, Data{-0.5, 0.25, 1.5}, d)
}

package playback

import "testing"

func TestState_String(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateLoaded, "Loaded"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateError, "Error"},
		{State(99), "Unknown"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	if StateIdle.IsActive() {
		t.Error("Idle should not be active")
	}
	for _, s := range []State{StateLoaded, StatePlaying, StatePaused, StateError} {
		if !s.IsActive() {
			t.Errorf("%v should be active", s)
		}
	}
}

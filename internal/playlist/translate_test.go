package playlist

import "testing"

func TestMatchIndex_FindsBySourceIdentity(t *testing.T) {
	master := []Track{
		{Title: "One", SourceRef: "/a/1.mp3"},
		{Title: "Two", SourceRef: "/a/2.mp3"},
	}
	local := []Track{
		{Title: "Two", SourceRef: "/a/2.mp3"},
	}

	tr := Translator{Local: local, Master: master}

	if got := tr.MasterToLocal(1); got != 0 {
		t.Errorf("MasterToLocal(1) = %d, want 0", got)
	}
	if got := tr.MasterToLocal(0); got != NotFound {
		t.Errorf("MasterToLocal(0) = %d, want NotFound", got)
	}
	if got := tr.LocalToMaster(0); got != 1 {
		t.Errorf("LocalToMaster(0) = %d, want 1", got)
	}
}

func TestMatchIndex_PercentEncodingMismatch(t *testing.T) {
	// The same file can be referenced encoded by one producer and
	// decoded by another.
	source := []Track{{SourceRef: "/music/sign%20o%27%20the%20times.mp3"}}
	target := []Track{
		{SourceRef: "/music/other.mp3"},
		{SourceRef: "/music/sign o' the times.mp3"},
	}

	if got := MatchIndex(source, 0, target); got != 1 {
		t.Errorf("MatchIndex = %d, want 1", got)
	}
}

func TestMatchIndex_OutOfBounds(t *testing.T) {
	source := []Track{{SourceRef: "/a.mp3"}}
	target := []Track{{SourceRef: "/a.mp3"}}

	if got := MatchIndex(source, -1, target); got != NotFound {
		t.Errorf("MatchIndex(-1) = %d, want NotFound", got)
	}
	if got := MatchIndex(source, 1, target); got != NotFound {
		t.Errorf("MatchIndex(1) = %d, want NotFound", got)
	}
}

func TestMatchIndex_EmptyLists(t *testing.T) {
	if got := MatchIndex(nil, 0, []Track{{SourceRef: "/a.mp3"}}); got != NotFound {
		t.Errorf("MatchIndex with empty source = %d, want NotFound", got)
	}
	if got := MatchIndex([]Track{{SourceRef: "/a.mp3"}}, 0, nil); got != NotFound {
		t.Errorf("MatchIndex with empty target = %d, want NotFound", got)
	}
}

func TestMatchIndex_DuplicateRefsFirstMatchWins(t *testing.T) {
	source := []Track{{SourceRef: "/dup.mp3"}}
	target := []Track{
		{Title: "first", SourceRef: "/dup.mp3"},
		{Title: "second", SourceRef: "/dup.mp3"},
	}

	if got := MatchIndex(source, 0, target); got != 0 {
		t.Errorf("MatchIndex = %d, want 0 (first match)", got)
	}
}

func TestNormalizeRef_InvalidEscapeComparedAsIs(t *testing.T) {
	// "%zz" is not a valid escape; the ref must survive untouched.
	if got := NormalizeRef("/bad%zz.mp3"); got != "/bad%zz.mp3" {
		t.Errorf("NormalizeRef = %q, want input unchanged", got)
	}
}

func TestSameSource(t *testing.T) {
	a := Track{Title: "A", SourceRef: "/x%20y.mp3"}
	b := Track{Title: "B", SourceRef: "/x y.mp3"}
	c := Track{Title: "A", SourceRef: "/z.mp3"}

	if !a.SameSource(b) {
		t.Error("a and b reference the same source, SameSource = false")
	}
	if a.SameSource(c) {
		t.Error("a and c reference different sources, SameSource = true")
	}
}

package playlist

// NotFound is returned by index translation when no target track
// references the source track's audio source.
const NotFound = -1

// MatchIndex locates the track at index in source within target, by
// source identity rather than position. Returns NotFound when index is
// out of bounds for source or no target track matches.
//
// First match wins: duplicate source refs in target are not
// disambiguated further.
func MatchIndex(source []Track, index int, target []Track) int {
	if index < 0 || index >= len(source) {
		return NotFound
	}
	want := NormalizeRef(source[index].SourceRef)
	for i, t := range target {
		if NormalizeRef(t.SourceRef) == want {
			return i
		}
	}
	return NotFound
}

// Translator resolves track positions between a local playlist and the
// master playlist it aliases. The two lists may order their tracks
// differently or carry different subsets, so resolution is derived on
// every call and never cached across track-list changes.
type Translator struct {
	Local  []Track
	Master []Track
}

// LocalToMaster returns the master index of the local track at
// localIndex, or NotFound.
func (tr Translator) LocalToMaster(localIndex int) int {
	return MatchIndex(tr.Local, localIndex, tr.Master)
}

// MasterToLocal returns the local index of the master track at
// masterIndex, or NotFound.
func (tr Translator) MasterToLocal(masterIndex int) int {
	return MatchIndex(tr.Master, masterIndex, tr.Local)
}

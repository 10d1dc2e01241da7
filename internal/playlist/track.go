package playlist

import "net/url"

// Track is a single entry in a registered playlist.
type Track struct {
	Title     string
	SourceRef string // location of the audio source
}

// NormalizeRef returns the canonical form of a source reference.
// Refs arrive percent-encoded from some producers and decoded from
// others, so every identity comparison goes through this first.
// An undecodable ref is compared as-is.
func NormalizeRef(ref string) string {
	decoded, err := url.PathUnescape(ref)
	if err != nil {
		return ref
	}
	return decoded
}

// SameSource reports whether two tracks reference the same audio source.
// Identity is decided by normalized SourceRef, never by list position.
func (t Track) SameSource(other Track) bool {
	return NormalizeRef(t.SourceRef) == NormalizeRef(other.SourceRef)
}

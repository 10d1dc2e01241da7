// Package waveform stores precomputed amplitude envelopes for tracks.
package waveform

// Data is an ordered sequence of normalized amplitude samples in the
// 0..1 range. The engine stores and returns it untouched; how it is
// rendered is the consumer's concern.
type Data []float64

// Clamp returns a copy with every sample forced into the 0..1 range.
func (d Data) Clamp() Data {
	out := make(Data, len(d))
	for i, s := range d {
		switch {
		case s < 0:
			out[i] = 0
		case s > 1:
			out[i] = 1
		default:
			out[i] = s
		}
	}
	return out
}

// Empty reports whether the waveform carries no samples.
func (d Data) Empty() bool {
	return len(d) == 0
}

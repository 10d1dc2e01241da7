// Package wavegen computes waveform amplitude envelopes from decoded
// audio, for display next to playlist tracks.
package wavegen

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"

	"github.com/tlehoux/chorus/internal/waveform"
)

// DefaultBuckets is the envelope resolution used when callers have no
// preference.
const DefaultBuckets = 200

const streamBufferSize = 512

// Peaks reduces a stream of totalSamples frames to at most buckets
// amplitude peaks, normalized to 0..1 by the loudest peak. The stream
// is consumed to its end.
func Peaks(s beep.Streamer, totalSamples, buckets int) waveform.Data {
	if buckets <= 0 || totalSamples <= 0 {
		return nil
	}

	bucketSize := totalSamples / buckets
	if bucketSize < 1 {
		bucketSize = 1
	}

	peaks := make(waveform.Data, 0, buckets)
	buf := make([][2]float64, streamBufferSize)
	var cur float64
	inBucket := 0

	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			amp := math.Abs((frame[0] + frame[1]) / 2)
			if amp > cur {
				cur = amp
			}
			inBucket++
			if inBucket >= bucketSize {
				peaks = append(peaks, cur)
				cur = 0
				inBucket = 0
			}
		}
		if !ok {
			break
		}
	}
	if inBucket > 0 {
		peaks = append(peaks, cur)
	}
	if len(peaks) > buckets {
		peaks = peaks[:buckets]
	}

	var loudest float64
	for _, p := range peaks {
		if p > loudest {
			loudest = p
		}
	}
	if loudest > 0 {
		for i := range peaks {
			peaks[i] /= loudest
		}
	}
	return peaks
}

// FromFile decodes the audio file at path and computes its envelope.
func FromFile(path string, buckets int) (waveform.Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".flac", ".wav":
	default:
		return nil, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var streamer beep.StreamSeekCloser
	switch ext {
	case ".mp3":
		streamer, _, err = mp3.Decode(f)
	case ".flac":
		streamer, _, err = flac.Decode(f)
	case ".wav":
		streamer, _, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	return Peaks(streamer, streamer.Len(), buckets), nil
}

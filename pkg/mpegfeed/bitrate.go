// ABOUTME: Running bitrate estimator
// ABOUTME: Direct bitrate for CBR, throttled count-weighted mean for VBR
package mpegfeed

import (
	"math"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/engine"
)

// vbrUpdateDelay is the number of decoded frames between published updates
// of the VBR running mean. Publishing every frame makes the displayed rate
// jitter.
const vbrUpdateDelay = 10

// bitrateEstimator keeps a numerically stable running-mean bitrate for VBR
// streams. CBR streams publish the reported rate directly and reset the mean
// so that a later VBR stretch starts its statistics fresh.
type bitrateEstimator struct {
	meanRate  float64
	meanCount uint32
	delay     int
	published int
}

// update folds one frame's metadata into the estimate and returns the
// currently published bitrate in bits/sec.
func (e *bitrateEstimator) update(info engine.FrameInfo) int {
	if info.VBR {
		e.delay--
		if e.delay < 1 {
			e.meanCount++
			// Saturate by halving, never wrap: the mean must stay a
			// weighted average of observed rates.
			if e.meanCount > math.MaxUint32/2 {
				e.meanCount = math.MaxUint32 / 4
			}

			e.meanRate = (float64(e.meanCount-1)*e.meanRate + float64(info.Bitrate)) /
				float64(e.meanCount)
			e.published = int(e.meanRate + 0.5)
			e.delay = vbrUpdateDelay
		}
		return e.published
	}

	bitrate := info.Bitrate
	if bitrate == 0 {
		bitrate = derivedBitrate(info)
	}
	e.published = bitrate
	e.delay = 1
	e.meanRate = 0
	e.meanCount = 0
	return e.published
}

// samplesPerFrame returns the decoded sample count per channel of one frame
// for the given MPEG version and layer. Undefined combinations never occur
// in valid streams.
func samplesPerFrame(v engine.Version, l engine.Layer) int {
	switch l {
	case engine.LayerI:
		return 384
	case engine.LayerII:
		return 1152
	case engine.LayerIII:
		if v == engine.MPEG1 {
			return 1152
		}
		return 576
	}
	return 0
}

// derivedBitrate computes a bitrate from the frame's byte size, for frames
// whose header reports none.
func derivedBitrate(info engine.FrameInfo) int {
	n := samplesPerFrame(info.Version, info.Layer)
	if n == 0 || info.SampleRate <= 0 {
		return 0
	}
	return int(float64(info.FrameSize+4)*8*float64(info.SampleRate)/float64(n) + 0.5)
}

// ABOUTME: MPEG frame header scanner
// ABOUTME: Derives per-frame bitrate metadata from the raw fed byte stream
package engine

// frameScanner watches the compressed bytes fed to an engine and parses MPEG
// audio frame headers out of them, independent of packet boundaries. It
// supplies the FrameInfo that the decoding engines themselves do not expose.
//
// The scanner resynchronizes silently: bytes that never form a valid header
// are skipped one at a time until the next sync word.
type frameScanner struct {
	buf         []byte // unconsumed tail, at most a partial header
	skip        int    // payload bytes of the current frame still to pass over
	info        FrameInfo
	haveFrame   bool
	lastBitrate int
	vbr         bool
}

func (s *frameScanner) reset() {
	*s = frameScanner{}
}

// push scans newly fed bytes for frame headers.
func (s *frameScanner) push(p []byte) {
	s.buf = append(s.buf, p...)

	i := 0
	for i < len(s.buf) {
		if s.skip > 0 {
			n := len(s.buf) - i
			if n > s.skip {
				n = s.skip
			}
			i += n
			s.skip -= n
			continue
		}

		if s.buf[i] != 0xFF {
			i++
			continue
		}
		if i+4 > len(s.buf) {
			// Partial header, wait for more bytes
			break
		}

		info, ok := parseFrameHeader(s.buf[i : i+4])
		if !ok {
			i++
			continue
		}

		if s.haveFrame && s.lastBitrate > 0 && info.Bitrate > 0 &&
			info.Bitrate != s.lastBitrate {
			s.vbr = true
		}
		if info.Bitrate > 0 {
			s.lastBitrate = info.Bitrate
		}
		s.haveFrame = true
		info.VBR = s.vbr
		s.info = info

		// Skip the payload so header-like bytes inside it are not parsed.
		// Free-format frames report no size; fall back to sync search.
		if info.FrameSize > 4 {
			s.skip = info.FrameSize - 4
		}
		i += 4
	}

	s.buf = append(s.buf[:0], s.buf[i:]...)
}

// frameInfo returns metadata for the most recently seen frame. The zero
// FrameInfo is returned before any header has been found.
func (s *frameScanner) frameInfo() FrameInfo {
	return s.info
}

var sampleRates = [3][3]int{
	{44100, 48000, 32000}, // MPEG 1
	{22050, 24000, 16000}, // MPEG 2
	{11025, 12000, 8000},  // MPEG 2.5
}

// Bitrate tables in kbit/s, indexed by the header's 4-bit bitrate field.
// Index 0 is free format, index 15 is invalid.
var (
	bitratesV1L1  = [15]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}
	bitratesV1L2  = [15]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384}
	bitratesV1L3  = [15]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
	bitratesV2L1  = [15]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256}
	bitratesV2L23 = [15]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
)

func bitrateBps(version Version, layer Layer, idx int) int {
	var kbps int
	if version == MPEG1 {
		switch layer {
		case LayerI:
			kbps = bitratesV1L1[idx]
		case LayerII:
			kbps = bitratesV1L2[idx]
		case LayerIII:
			kbps = bitratesV1L3[idx]
		}
	} else {
		if layer == LayerI {
			kbps = bitratesV2L1[idx]
		} else {
			kbps = bitratesV2L23[idx]
		}
	}
	return kbps * 1000
}

// parseFrameHeader decodes a 4-byte MPEG audio frame header. Returns false
// for anything that is not a valid header (bad sync, reserved version or
// layer, invalid bitrate or sample rate index).
func parseFrameHeader(h []byte) (FrameInfo, bool) {
	if h[0] != 0xFF || h[1]&0xE0 != 0xE0 {
		return FrameInfo{}, false
	}

	var version Version
	switch (h[1] >> 3) & 3 {
	case 0:
		version = MPEG25
	case 1:
		return FrameInfo{}, false // reserved
	case 2:
		version = MPEG2
	case 3:
		version = MPEG1
	}

	var layer Layer
	switch (h[1] >> 1) & 3 {
	case 0:
		return FrameInfo{}, false // reserved
	case 1:
		layer = LayerIII
	case 2:
		layer = LayerII
	case 3:
		layer = LayerI
	}

	bitrateIdx := int(h[2]>>4) & 0xF
	if bitrateIdx == 15 {
		return FrameInfo{}, false
	}
	rateIdx := int(h[2]>>2) & 3
	if rateIdx == 3 {
		return FrameInfo{}, false
	}
	padding := int(h[2]>>1) & 1

	rate := sampleRates[version-1][rateIdx]
	bitrate := bitrateBps(version, layer, bitrateIdx)

	var frameSize int
	if bitrate > 0 {
		switch layer {
		case LayerI:
			frameSize = (12*bitrate/rate + padding) * 4
		case LayerII:
			frameSize = 144*bitrate/rate + padding
		case LayerIII:
			if version == MPEG1 {
				frameSize = 144*bitrate/rate + padding
			} else {
				frameSize = 72*bitrate/rate + padding
			}
		}
	}

	return FrameInfo{
		Bitrate:    bitrate,
		FrameSize:  frameSize,
		SampleRate: rate,
		Version:    version,
		Layer:      layer,
	}, true
}

// ABOUTME: MPEG-1/2 Layer I/II feed engine
// ABOUTME: Incremental decoding backed by the pure-Go gen2brain/mpeg decoder
package engine

import (
	"fmt"

	"github.com/gen2brain/mpeg"
)

// MP2 is a feed-based engine for MPEG-1/2 audio Layers I and II. Bytes fed
// through Feed accumulate in the underlying decoder's buffer; DecodeFrame
// drains one 1152-sample frame at a time and reports StatusNeedMore while
// the buffer holds less than a full frame.
//
// Output is interleaved stereo float32 (mono streams are decoded to both
// channels), so the reported format is always two channels of EncodingFloat32.
type MP2 struct {
	buf    *mpeg.Buffer
	dec    *mpeg.Audio
	scan   frameScanner
	format Format
	open   bool
}

// NewMP2 creates a Layer I/II engine. The engine is unusable until OpenFeed.
func NewMP2() *MP2 {
	return &MP2{}
}

// OpenFeed opens the engine in streaming-feed mode. Calling it on an open
// engine discards all buffered input and decoder state.
func (m *MP2) OpenFeed() error {
	buf, err := mpeg.NewBuffer(nil)
	if err != nil {
		return fmt.Errorf("mp2: create buffer: %w", err)
	}

	m.buf = buf
	m.dec = mpeg.NewAudio(buf)
	m.scan.reset()
	m.format = Format{}
	m.open = true
	return nil
}

func (m *MP2) Feed(p []byte) error {
	if !m.open {
		return ErrFeedClosed
	}

	m.scan.push(p)
	m.buf.Write(p)
	return nil
}

func (m *MP2) DecodeFrame() ([]byte, Status, error) {
	if !m.open {
		return nil, StatusNeedMore, ErrFeedClosed
	}

	if !m.dec.HasHeader() {
		return nil, StatusNeedMore, nil
	}

	if rate := m.dec.Samplerate(); rate != m.format.Rate {
		m.format = Format{Rate: rate, Channels: 2, Encoding: EncodingFloat32}
		return nil, StatusNewFormat, nil
	}

	samples := m.dec.Decode()
	if samples == nil {
		if m.buf.HasEnded() {
			return nil, StatusDone, nil
		}
		return nil, StatusNeedMore, nil
	}

	// The decoder reuses its sample buffers between frames
	src := samples.Bytes()
	pcm := make([]byte, len(src))
	copy(pcm, src)

	return pcm, StatusOK, nil
}

func (m *MP2) Format() Format {
	return m.format
}

func (m *MP2) FrameInfo() FrameInfo {
	return m.scan.frameInfo()
}

func (m *MP2) Close() error {
	m.open = false
	m.dec = nil
	m.buf = nil
	return nil
}

// ABOUTME: MPEG Layer III buffered-feed engine
// ABOUTME: Decodes MP3 via hajimehoshi/go-mp3 once the input is fully fed
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// ErrFeedAfterDecode is returned by MP3.Feed once decoding has started.
var ErrFeedAfterDecode = errors.New("mp3: cannot feed after decoding started")

// mp3FrameBytes is one full Layer III frame of the decoder's fixed output:
// 1152 samples per channel, 2 channels, 16-bit.
const mp3FrameBytes = MaxSamplesPerFrame * 2 * 2

// MP3 is a Layer III engine over fully-buffered input. go-mp3 pulls from an
// io.Reader and cannot suspend mid-frame, so this engine operates in buffered
// mode: feed the complete stream, then drain frames. DecodeFrame reports
// StatusNeedMore until enough input has been fed for the decoder to find the
// first frame; once the decoder exists it reads a fixed snapshot of the fed
// bytes, so from the format announcement on, non-empty Feed calls fail with
// ErrFeedAfterDecode. Empty feeds are accepted and ignored throughout.
//
// Output is interleaved stereo signed 16-bit at the stream's sample rate.
type MP3 struct {
	raw      bytes.Buffer
	dec      *mp3.Decoder
	scan     frameScanner
	format   Format
	frame    []byte
	open     bool
	draining bool
}

// NewMP3 creates a Layer III engine. The engine is unusable until OpenFeed.
func NewMP3() *MP3 {
	return &MP3{frame: make([]byte, mp3FrameBytes)}
}

func (m *MP3) OpenFeed() error {
	m.raw.Reset()
	m.dec = nil
	m.scan.reset()
	m.format = Format{}
	m.open = true
	m.draining = false
	return nil
}

func (m *MP3) Feed(p []byte) error {
	if !m.open {
		return ErrFeedClosed
	}
	if len(p) == 0 {
		return nil
	}
	// The decoder reads a snapshot of the buffer taken at its creation;
	// bytes fed after that point would never reach it.
	if m.dec != nil || m.draining {
		return ErrFeedAfterDecode
	}

	m.scan.push(p)
	m.raw.Write(p)
	return nil
}

func (m *MP3) DecodeFrame() ([]byte, Status, error) {
	if !m.open {
		return nil, StatusNeedMore, ErrFeedClosed
	}

	if m.dec == nil {
		dec, err := mp3.NewDecoder(bytes.NewReader(m.raw.Bytes()))
		if err != nil {
			// Not enough input yet, or garbage before the first frame.
			// Tolerant policy: keep asking for more rather than failing.
			return nil, StatusNeedMore, nil
		}
		m.dec = dec
	}

	if rate := m.dec.SampleRate(); rate != m.format.Rate {
		m.format = Format{Rate: rate, Channels: 2, Encoding: EncodingSigned16}
		return nil, StatusNewFormat, nil
	}
	m.draining = true

	n, err := io.ReadFull(m.dec, m.frame)
	if n > 0 {
		pcm := make([]byte, n)
		copy(pcm, m.frame[:n])
		return pcm, StatusOK, nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, StatusDone, nil
	}
	if err != nil {
		return nil, StatusNeedMore, fmt.Errorf("mp3: decode: %w", err)
	}
	return nil, StatusNeedMore, nil
}

func (m *MP3) Format() Format {
	return m.format
}

func (m *MP3) FrameInfo() FrameInfo {
	return m.scan.frameInfo()
}

func (m *MP3) Close() error {
	m.open = false
	m.dec = nil
	m.raw.Reset()
	return nil
}

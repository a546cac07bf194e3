// ABOUTME: Test doubles for the engine and packet source interfaces
// ABOUTME: Scripted engine, deterministic framing engine, slice-backed source
package enginetest

import (
	"io"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/engine"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/mpegfeed"
)

// Step is one scripted DecodeFrame result.
type Step struct {
	PCM    []byte
	Status engine.Status
	Err    error
}

// Engine is a scripted engine.Engine. Each DecodeFrame call consumes the
// next Step; once the script is exhausted it reports StatusNeedMore.
type Engine struct {
	Steps []Step

	FormatV engine.Format
	InfoV   engine.FrameInfo

	OpenErr error
	FeedErr error

	Fed    [][]byte
	Opens  int
	Closes int

	cursor int
}

func (e *Engine) OpenFeed() error {
	e.Opens++
	if e.OpenErr != nil {
		return e.OpenErr
	}
	return nil
}

func (e *Engine) Feed(p []byte) error {
	if e.FeedErr != nil {
		return e.FeedErr
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	e.Fed = append(e.Fed, buf)
	return nil
}

func (e *Engine) DecodeFrame() ([]byte, engine.Status, error) {
	if e.cursor >= len(e.Steps) {
		return nil, engine.StatusNeedMore, nil
	}
	step := e.Steps[e.cursor]
	e.cursor++
	return step.PCM, step.Status, step.Err
}

func (e *Engine) Format() engine.Format {
	return e.FormatV
}

func (e *Engine) FrameInfo() engine.FrameInfo {
	return e.InfoV
}

func (e *Engine) Close() error {
	e.Closes++
	return nil
}

// FrameEngine is a deterministic feed engine for chunking tests: it treats
// every complete FrameBytes of input as one compressed frame and "decodes"
// it to its own bytes. Output depends only on the concatenated byte stream,
// never on how it was chunked.
type FrameEngine struct {
	FrameBytes int

	buf       []byte
	announced bool
	open      bool
}

func (e *FrameEngine) OpenFeed() error {
	e.buf = nil
	e.announced = false
	e.open = true
	return nil
}

func (e *FrameEngine) Feed(p []byte) error {
	if !e.open {
		return engine.ErrFeedClosed
	}
	e.buf = append(e.buf, p...)
	return nil
}

func (e *FrameEngine) DecodeFrame() ([]byte, engine.Status, error) {
	if !e.announced {
		e.announced = true
		return nil, engine.StatusNewFormat, nil
	}
	if len(e.buf) < e.FrameBytes {
		return nil, engine.StatusNeedMore, nil
	}

	pcm := make([]byte, e.FrameBytes)
	copy(pcm, e.buf[:e.FrameBytes])
	e.buf = e.buf[e.FrameBytes:]
	return pcm, engine.StatusOK, nil
}

func (e *FrameEngine) Format() engine.Format {
	return engine.Format{Rate: 44100, Channels: 2, Encoding: engine.EncodingSigned16}
}

func (e *FrameEngine) FrameInfo() engine.FrameInfo {
	return engine.FrameInfo{
		Bitrate:    128000,
		FrameSize:  e.FrameBytes,
		SampleRate: 44100,
		Version:    engine.MPEG1,
		Layer:      engine.LayerIII,
	}
}

func (e *FrameEngine) Close() error {
	e.open = false
	return nil
}

// DataPacket builds an untimestamped packet.
func DataPacket(data []byte) *mpegfeed.Packet {
	return &mpegfeed.Packet{Data: data, PTS: audio.NoPTS}
}

// Source serves packets from a slice, then io.EOF.
type Source struct {
	Packets []*mpegfeed.Packet
	cursor  int
}

func (s *Source) ReadPacket() (*mpegfeed.Packet, error) {
	if s.cursor >= len(s.Packets) {
		return nil, io.EOF
	}
	pkt := s.Packets[s.cursor]
	s.cursor++
	return pkt, nil
}

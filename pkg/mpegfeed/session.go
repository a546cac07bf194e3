// ABOUTME: Decode session lifecycle and per-packet decode loop
// ABOUTME: Feeds packets to the engine, emits timestamped PCM blocks
package mpegfeed

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/engine"
	"github.com/google/uuid"
)

// Session owns one decoding engine handle and drives the feed/decode/emit
// cycle. A Session is created with NewSession, driven by one logical decode
// loop through DecodePacket, optionally Reset on stream discontinuities, and
// released exactly once with Close.
type Session struct {
	id  string
	eng engine.Engine
	src PacketSource

	format          audio.Format
	sampleFrameSize int

	pts       int64
	ptsOffset int

	est     bitrateEstimator
	bitrate int

	open bool
}

// Option configures a Session at creation time.
type Option func(*Session)

// WithID overrides the generated session identity. Useful when the host
// already tracks streams by its own IDs.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession allocates a session and opens the engine feed in streaming
// mode. On any failure all partial state is released: the caller must not
// call Close after a failed NewSession.
func NewSession(eng engine.Engine, src PacketSource, opts ...Option) (*Session, error) {
	if eng == nil || src == nil {
		return nil, fmt.Errorf("%w: nil engine or source", ErrEngineInit)
	}

	s := &Session{
		id:   uuid.New().String(),
		eng:  eng,
		src:  src,
		pts:  audio.NoPTS,
		open: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := eng.OpenFeed(); err != nil {
		eng.Close()
		return nil, fmt.Errorf("%w: %s", ErrEngineInit, err)
	}

	return s, nil
}

// ID returns the session's identity, used in log lines.
func (s *Session) ID() string {
	return s.id
}

// Format returns the current stream format. Zero until the engine announces
// the first format.
func (s *Session) Format() audio.Format {
	return s.format
}

// SampleFrameSize returns the byte size of one interleaved sample across all
// channels, or 0 before the first format is established.
func (s *Session) SampleFrameSize() int {
	return s.sampleFrameSize
}

// Bitrate returns the currently published bitrate estimate in bits/sec.
func (s *Session) Bitrate() int {
	return s.bitrate
}

// VBR reports whether the stream has shown a variable bitrate so far.
func (s *Session) VBR() bool {
	return s.eng.FrameInfo().VBR
}

// DecodePacket pulls one packet from the source, feeds it to the engine and
// requests one decoded frame.
//
// Returns io.EOF when the source is exhausted. An empty block (zero samples)
// is a normal result while the engine waits for more input; the host keeps
// feeding without special-casing. On error, state from the failed call is
// discarded but the session stays usable for the next packet.
func (s *Session) DecodePacket() (*audio.Block, error) {
	if !s.open {
		return nil, ErrClosed
	}

	pkt, err := s.src.ReadPacket()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: read packet: %s", ErrDecode, err)
	}
	if pkt == nil {
		return nil, io.EOF
	}

	// Next bytes decode from this presentation time.
	if pkt.PTS != audio.NoPTS {
		s.pts = pkt.PTS
		s.ptsOffset = 0
	}

	// Feeding must not decode; the engine buffers until asked.
	if err := s.eng.Feed(pkt.Data); err != nil {
		return nil, fmt.Errorf("%w: feed: %s", ErrDecode, err)
	}

	pcm, status, err := s.eng.DecodeFrame()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}

	switch status {
	case engine.StatusNeedMore:
		return s.emptyBlock(), nil
	case engine.StatusNewFormat:
		if err := s.adoptFormat(); err != nil {
			return nil, err
		}
	}

	if s.sampleFrameSize < 1 {
		return nil, fmt.Errorf("%w: no sample size", ErrDecode)
	}

	samples := len(pcm) / s.sampleFrameSize
	block := &audio.Block{
		PCM:       pcm,
		Samples:   samples,
		Format:    s.format,
		PTS:       s.pts,
		PTSOffset: s.ptsOffset,
	}
	s.ptsOffset += samples

	s.bitrate = s.est.update(s.eng.FrameInfo())

	return block, nil
}

// Reset handles a stream discontinuity (host-side seek): the engine feed is
// closed and reopened, pending decode state is dropped, and timestamp and
// bitrate statistics start fresh. On failure the session stays allocated but
// decoding is undefined until a successful Reset.
func (s *Session) Reset() error {
	if !s.open {
		return ErrClosed
	}

	if err := s.eng.OpenFeed(); err != nil {
		return fmt.Errorf("%w: %s", ErrReset, err)
	}

	s.pts = audio.NoPTS
	s.ptsOffset = 0
	s.est = bitrateEstimator{}
	s.bitrate = 0

	log.Printf("session %s: reset", s.id)
	return nil
}

// Close closes the feed and releases the engine. Must be called exactly once
// per successful NewSession.
func (s *Session) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	return s.eng.Close()
}

func (s *Session) adoptFormat() error {
	format, size, err := resolveFormat(s.eng.Format())
	if err != nil {
		return err
	}

	if format != s.format {
		log.Printf("session %s: format %d Hz, %d ch, %s",
			s.id, format.SampleRate, format.Channels, format.Sample)
	}
	s.format = format
	s.sampleFrameSize = size
	return nil
}

func (s *Session) emptyBlock() *audio.Block {
	return &audio.Block{
		Format:    s.format,
		PTS:       s.pts,
		PTSOffset: s.ptsOffset,
	}
}

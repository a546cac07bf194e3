// ABOUTME: Reader-backed packet source
// ABOUTME: Chunks an io.Reader into fixed-size compressed packets
package stream

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/mpegfeed"
)

// DefaultChunkSize is the packet payload size used when none is configured.
const DefaultChunkSize = 4096

// minFrameBytes is a lower bound on the byte size of any MPEG audio frame
// (Layer I at the lowest rate). It bounds how many frames can still sit in
// the engine's buffer when the reader runs dry.
const minFrameBytes = 32

// ChunkSource adapts an io.Reader into a PacketSource by slicing it into
// fixed-size packets. The first packet is stamped with timestamp zero; the
// rest carry no timestamp, so the session accounts their position purely by
// decoded-sample offset.
//
// A session drains at most one frame per packet, so after the reader is
// exhausted the source keeps serving empty flush packets — enough for every
// frame the engine could still hold — before reporting io.EOF.
type ChunkSource struct {
	r         io.Reader
	chunk     int
	first     bool
	read      int64
	flushLeft int
	draining  bool
}

// NewChunkSource creates a packet source over r. chunkSize <= 0 selects
// DefaultChunkSize.
func NewChunkSource(r io.Reader, chunkSize int) *ChunkSource {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ChunkSource{r: r, chunk: chunkSize, first: true}
}

func (s *ChunkSource) ReadPacket() (*mpegfeed.Packet, error) {
	if s.draining {
		if s.flushLeft == 0 {
			return nil, io.EOF
		}
		s.flushLeft--
		return &mpegfeed.Packet{PTS: audio.NoPTS}, nil
	}

	buf := make([]byte, s.chunk)
	n, err := io.ReadFull(s.r, buf)
	if n == 0 {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			s.draining = true
			s.flushLeft = int((s.read + minFrameBytes - 1) / minFrameBytes)
			return s.ReadPacket()
		}
		return nil, fmt.Errorf("read chunk: %w", err)
	}
	s.read += int64(n)

	pkt := &mpegfeed.Packet{Data: buf[:n], PTS: audio.NoPTS}
	if s.first {
		pkt.PTS = 0
		s.first = false
	}
	return pkt, nil
}

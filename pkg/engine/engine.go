// ABOUTME: Engine interface definition
// ABOUTME: Common contract for feed-based MPEG audio decoding engines
package engine

import "errors"

// MaxSamplesPerFrame is the canonical upper bound on decoded samples per
// channel for one MPEG audio frame. Engines never emit more; host output
// buffers depend on this limit.
const MaxSamplesPerFrame = 1152

var (
	ErrFeedClosed = errors.New("engine: feed not open")
)

// Status reports the outcome of one DecodeFrame call.
type Status int

const (
	// StatusOK means a frame was decoded and PCM bytes are available.
	StatusOK Status = iota
	// StatusNeedMore means the engine needs more input before it can emit a
	// full frame. Not an error; keep feeding.
	StatusNeedMore
	// StatusNewFormat means the stream's format changed (or was established
	// for the first time). Query Format before requesting the next frame.
	StatusNewFormat
	// StatusDone means the engine drained everything it will ever produce.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNeedMore:
		return "need more"
	case StatusNewFormat:
		return "new format"
	case StatusDone:
		return "done"
	}
	return "unknown"
}

// Encoding is the engine's reported PCM sample encoding.
type Encoding int

const (
	EncodingSigned8 Encoding = iota + 1
	EncodingSigned16
	EncodingSigned32
	EncodingFloat32
)

// Version is the MPEG audio version of a frame.
type Version int

const (
	MPEG1 Version = iota + 1
	MPEG2
	MPEG25
)

// Layer is the MPEG audio layer of a frame.
type Layer int

const (
	LayerI Layer = iota + 1
	LayerII
	LayerIII
)

// Format is the engine's report of the decoded stream format.
type Format struct {
	Rate     int
	Channels int
	Encoding Encoding
}

// FrameInfo carries per-frame metadata for bitrate estimation.
type FrameInfo struct {
	Bitrate    int  // bits/sec; 0 when not derivable (free-format frames)
	VBR        bool // bitrate observed to change between frames
	FrameSize  int  // frame byte size including header
	SampleRate int  // frame sample rate in Hz
	Version    Version
	Layer      Layer
}

// Engine is a stateful, feed-based MPEG audio decoder.
//
// An Engine is not safe for concurrent use; it is exclusively owned by one
// decoding session. OpenFeed may be called again on an open engine to discard
// all buffered state and start a fresh stream (seek discontinuities).
type Engine interface {
	// OpenFeed opens (or reopens) the engine in streaming-feed mode.
	OpenFeed() error

	// Feed appends compressed bytes to the engine's input buffer without
	// decoding anything.
	Feed(p []byte) error

	// DecodeFrame requests one decoded frame. pcm is only valid for
	// StatusOK and is owned by the caller. err is non-nil only for
	// structural failures, never for malformed stream bytes.
	DecodeFrame() (pcm []byte, status Status, err error)

	// Format returns the current stream format. Valid after the first
	// StatusNewFormat.
	Format() Format

	// FrameInfo returns metadata for the most recently seen frame.
	FrameInfo() FrameInfo

	// Close releases the engine. The engine is unusable afterwards.
	Close() error
}

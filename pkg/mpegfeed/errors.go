// ABOUTME: Error taxonomy for the decoding adapter
// ABOUTME: Sentinel errors matched with errors.Is by host pipelines
package mpegfeed

import "errors"

var (
	// ErrEngineInit means the engine could not be opened for feeding.
	// Fatal to the session; the caller must not reuse it.
	ErrEngineInit = errors.New("mpegfeed: engine init failed")

	// ErrUnsupportedFormat means the engine reported a sample encoding the
	// adapter cannot represent. Fatal to the current decode; there is no
	// safe default encoding to assume.
	ErrUnsupportedFormat = errors.New("mpegfeed: unsupported sample format")

	// ErrDecode means the engine reported a non-recoverable status, or the
	// per-sample-frame size was still unknown when samples arrived. Fatal to
	// the current DecodePacket call only; the host may try the next packet.
	ErrDecode = errors.New("mpegfeed: decode failed")

	// ErrReset means the engine feed could not be reopened. The session
	// stays allocated but is unusable until a successful Reset.
	ErrReset = errors.New("mpegfeed: reset failed")

	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("mpegfeed: session closed")
)

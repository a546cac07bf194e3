// ABOUTME: Audio fundamentals package providing core PCM types
// ABOUTME: Defines SampleFormat, Format, Block and sample conversion helpers
// Package audio provides the PCM types shared by the mpegfeed decoder.
//
// This package defines the types that cross the decoder boundary:
//   - SampleFormat: PCM sample encoding (signed 8/16/32-bit, 32-bit float)
//   - Format: Describes a decoded stream (sample rate, channels, encoding)
//   - Block: One decode step's output with timestamp bookkeeping
//
// A Block is a transient view: ownership transfers to the caller as soon as
// DecodePacket returns, and the decoding session never retains it.
//
// Example:
//
//	format := audio.Format{
//	    SampleRate: 44100,
//	    Channels:   2,
//	    Sample:     audio.FormatS16,
//	}
//	frameSize := format.SampleFrameSize() // 4 bytes per interleaved sample
package audio

// ABOUTME: Decoding engine boundary package
// ABOUTME: Defines the feed-based engine interface and its MPEG implementations
// Package engine defines the decoding-engine boundary used by mpegfeed.
//
// An Engine consumes arbitrarily chunked compressed bytes through Feed and
// produces at most one decoded MPEG audio frame per DecodeFrame call.
// Feeding never decodes; this decouples the host's packet granularity from
// the engine's frame granularity, since MPEG frames need not align with
// packet boundaries.
//
// Two implementations ship with the package:
//   - MP2: incremental MPEG-1/2 Layer I/II decoding (gen2brain/mpeg)
//   - MP3: Layer III decoding over fully-buffered input (hajimehoshi/go-mp3)
//
// Engines are tolerant of malformed input: garbage bytes are skipped during
// resynchronization and never surface as errors. Only structural failures
// (feed not open, feed-after-decode in buffered mode) are reported.
package engine

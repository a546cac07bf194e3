// ABOUTME: Audio type definitions
// ABOUTME: Defines sample formats, stream formats and decoded blocks
package audio

import "math"

// NoPTS marks a packet or block that carries no presentation timestamp.
const NoPTS = int64(math.MinInt64)

// SampleFormat identifies the encoding of one PCM sample.
type SampleFormat int

const (
	FormatUnknown SampleFormat = iota
	FormatS8                   // signed 8-bit
	FormatS16                  // signed 16-bit little-endian
	FormatS32                  // signed 32-bit little-endian
	FormatF32                  // 32-bit float little-endian
)

// BytesPerSample returns the storage size of one sample, or 0 for FormatUnknown.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatS8:
		return 1
	case FormatS16:
		return 2
	case FormatS32, FormatF32:
		return 4
	}
	return 0
}

func (f SampleFormat) String() string {
	switch f {
	case FormatS8:
		return "s8"
	case FormatS16:
		return "s16"
	case FormatS32:
		return "s32"
	case FormatF32:
		return "f32"
	}
	return "unknown"
}

// Format describes a decoded PCM stream
type Format struct {
	SampleRate int
	Channels   int
	Sample     SampleFormat
}

// SampleFrameSize returns the byte size of one interleaved sample across all
// channels. Zero until both channels and encoding are known.
func (f Format) SampleFrameSize() int {
	return f.Channels * f.Sample.BytesPerSample()
}

// Block represents decoded PCM audio produced by one decode step.
type Block struct {
	PCM       []byte // interleaved samples in Format.Sample encoding
	Samples   int    // per-channel sample count
	Format    Format
	PTS       int64 // Presentation timestamp (microseconds), NoPTS if never set
	PTSOffset int   // Samples already emitted since PTS was adopted
}

// Empty reports whether the block carries no samples. Empty blocks are a
// normal result while the decoder waits for more input.
func (b *Block) Empty() bool {
	return b.Samples == 0
}

// EffectivePTS returns the presentation timestamp of the block's first
// sample, in microseconds: the adopted PTS advanced by the sample offset.
// Returns NoPTS when no timestamp was ever adopted or the rate is unknown.
func (b *Block) EffectivePTS() int64 {
	if b.PTS == NoPTS || b.Format.SampleRate <= 0 {
		return NoPTS
	}
	return b.PTS + int64(b.PTSOffset)*1e6/int64(b.Format.SampleRate)
}

// S16Interleaved converts the block's PCM to interleaved signed 16-bit
// samples, down- or up-converting from the block's own encoding. Returns nil
// for an empty block or an unknown encoding.
func (b *Block) S16Interleaved() []int16 {
	bps := b.Format.Sample.BytesPerSample()
	if len(b.PCM) == 0 || bps == 0 {
		return nil
	}

	n := len(b.PCM) / bps
	out := make([]int16, n)

	switch b.Format.Sample {
	case FormatS8:
		for i := 0; i < n; i++ {
			out[i] = int16(int8(b.PCM[i])) << 8
		}
	case FormatS16:
		for i := 0; i < n; i++ {
			out[i] = int16(uint16(b.PCM[2*i]) | uint16(b.PCM[2*i+1])<<8)
		}
	case FormatS32:
		for i := 0; i < n; i++ {
			v := int32(uint32(b.PCM[4*i]) | uint32(b.PCM[4*i+1])<<8 |
				uint32(b.PCM[4*i+2])<<16 | uint32(b.PCM[4*i+3])<<24)
			out[i] = int16(v >> 16)
		}
	case FormatF32:
		for i := 0; i < n; i++ {
			bits := uint32(b.PCM[4*i]) | uint32(b.PCM[4*i+1])<<8 |
				uint32(b.PCM[4*i+2])<<16 | uint32(b.PCM[4*i+3])<<24
			out[i] = SampleFromFloat32(math.Float32frombits(bits))
		}
	}

	return out
}

// SampleFromFloat32 converts a [-1, 1] float sample to signed 16-bit,
// clamping out-of-range values.
func SampleFromFloat32(v float32) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// S16Bytes packs interleaved 16-bit samples as little-endian bytes.
func S16Bytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[2*i] = byte(s)
		out[2*i+1] = byte(uint16(s) >> 8)
	}
	return out
}

// ABOUTME: Format resolver
// ABOUTME: Maps engine format reports onto the externally visible PCM format
package mpegfeed

import (
	"fmt"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/engine"
)

// maxChannels caps the channel count the adapter will represent.
const maxChannels = 8

// resolveFormat maps the engine's format report onto an audio.Format and the
// derived per-sample-frame byte size. Encodings outside the closed set, or
// implausible rates and channel counts, are ErrUnsupportedFormat: there is no
// safe default to guess.
func resolveFormat(ef engine.Format) (audio.Format, int, error) {
	var sample audio.SampleFormat
	switch ef.Encoding {
	case engine.EncodingSigned8:
		sample = audio.FormatS8
	case engine.EncodingSigned16:
		sample = audio.FormatS16
	case engine.EncodingSigned32:
		sample = audio.FormatS32
	case engine.EncodingFloat32:
		sample = audio.FormatF32
	default:
		return audio.Format{}, 0, fmt.Errorf("%w: bad encoding %d", ErrUnsupportedFormat, ef.Encoding)
	}

	if ef.Rate <= 0 {
		return audio.Format{}, 0, fmt.Errorf("%w: bad sample rate %d", ErrUnsupportedFormat, ef.Rate)
	}
	if ef.Channels < 1 || ef.Channels > maxChannels {
		return audio.Format{}, 0, fmt.Errorf("%w: bad channel count %d", ErrUnsupportedFormat, ef.Channels)
	}

	f := audio.Format{
		SampleRate: ef.Rate,
		Channels:   ef.Channels,
		Sample:     sample,
	}
	return f, f.SampleFrameSize(), nil
}

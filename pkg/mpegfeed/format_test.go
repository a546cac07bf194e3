// ABOUTME: Tests for the format resolver
// ABOUTME: Encoding mapping, sample-frame size derivation, rejection cases
package mpegfeed

import (
	"errors"
	"testing"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/engine"
)

func TestResolveFormatEncodings(t *testing.T) {
	tests := []struct {
		name      string
		encoding  engine.Encoding
		sample    audio.SampleFormat
		frameSize int // for 2 channels
	}{
		{"signed 8", engine.EncodingSigned8, audio.FormatS8, 2},
		{"signed 16", engine.EncodingSigned16, audio.FormatS16, 4},
		{"signed 32", engine.EncodingSigned32, audio.FormatS32, 8},
		{"float 32", engine.EncodingFloat32, audio.FormatF32, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, size, err := resolveFormat(engine.Format{
				Rate:     44100,
				Channels: 2,
				Encoding: tt.encoding,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Sample != tt.sample {
				t.Errorf("expected sample format %v, got %v", tt.sample, f.Sample)
			}
			if size != tt.frameSize {
				t.Errorf("expected sample frame size %d, got %d", tt.frameSize, size)
			}
			if f.SampleRate != 44100 || f.Channels != 2 {
				t.Errorf("rate/channels not carried over: %+v", f)
			}
		})
	}
}

func TestResolveFormatRejects(t *testing.T) {
	tests := []struct {
		name   string
		format engine.Format
	}{
		{"unknown encoding", engine.Format{Rate: 44100, Channels: 2, Encoding: 99}},
		{"zero encoding", engine.Format{Rate: 44100, Channels: 2}},
		{"zero rate", engine.Format{Channels: 2, Encoding: engine.EncodingSigned16}},
		{"negative rate", engine.Format{Rate: -1, Channels: 2, Encoding: engine.EncodingSigned16}},
		{"zero channels", engine.Format{Rate: 44100, Encoding: engine.EncodingSigned16}},
		{"too many channels", engine.Format{Rate: 44100, Channels: 9, Encoding: engine.EncodingSigned16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := resolveFormat(tt.format)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("expected ErrUnsupportedFormat, got %v", err)
			}
		})
	}
}

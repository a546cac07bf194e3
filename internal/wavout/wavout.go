// ABOUTME: WAV file sink for decoded blocks
// ABOUTME: Streams 16-bit PCM to disk via go-audio's wav encoder
package wavout

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
)

// Writer streams decoded blocks into a 16-bit PCM WAV file. The stream
// format must be known before the file is created; blocks in other
// encodings are converted to signed 16-bit.
type Writer struct {
	f      *os.File
	enc    *wav.Encoder
	format audio.Format
}

// Create opens path for writing with the given stream format.
func Create(path string, format audio.Format) (*Writer, error) {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("wavout: format not established")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wavout: create: %w", err)
	}

	return &Writer{
		f:      f,
		enc:    wav.NewEncoder(f, format.SampleRate, 16, format.Channels, 1),
		format: format,
	}, nil
}

// WriteBlock appends one decoded block. Empty blocks are ignored.
func (w *Writer) WriteBlock(b *audio.Block) error {
	samples := b.S16Interleaved()
	if len(samples) == 0 {
		return nil
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: w.format.Channels,
			SampleRate:  w.format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("wavout: write: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("wavout: finalize: %w", err)
	}
	return w.f.Close()
}

// ABOUTME: Oto-based audio playback sink
// ABOUTME: Plays decoded blocks as 16-bit PCM through a pipe-fed player
package playback

import (
	"fmt"
	"io"
	"log"

	"github.com/ebitengine/oto/v3"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
)

// Output plays decoded PCM blocks on the default audio device. Blocks are
// converted to 16-bit and written to a persistent pipe-fed player.
type Output struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	ready      bool
}

func NewOutput() *Output {
	return &Output{}
}

// Open initializes the output device for the given stream format.
func (o *Output) Open(format audio.Format) error {
	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.sampleRate == format.SampleRate && o.channels == format.Channels {
		return nil
	}

	// oto allows only one context per process; on a mid-stream format
	// change keep playing through the existing one.
	if o.otoCtx != nil {
		log.Printf("Warning: format change (%dHz %dch -> %dHz %dch) with playback open, keeping existing device",
			o.sampleRate, o.channels, format.SampleRate, format.Channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("playback: create context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = format.SampleRate
	o.channels = format.Channels

	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true

	log.Printf("Playback initialized: %dHz, %d channels", format.SampleRate, format.Channels)
	return nil
}

// WriteBlock plays one decoded block, blocking until buffered.
func (o *Output) WriteBlock(b *audio.Block) error {
	if !o.ready {
		return fmt.Errorf("playback: not initialized")
	}
	if b.Empty() {
		return nil
	}

	pcm := audio.S16Bytes(b.S16Interleaved())
	if _, err := o.pipeWriter.Write(pcm); err != nil {
		return fmt.Errorf("playback: write: %w", err)
	}
	return nil
}

// Close stops playback and releases the device.
func (o *Output) Close() error {
	if !o.ready {
		return nil
	}
	o.ready = false

	o.pipeWriter.Close()
	if o.player != nil {
		o.player.Close()
	}
	return nil
}

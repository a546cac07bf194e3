// ABOUTME: Tests for the WAV sink
// ABOUTME: Round-trips decoded blocks through the encoder and decoder
package wavout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
)

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	format := audio.Format{SampleRate: 44100, Channels: 2, Sample: audio.FormatS16}

	w, err := Create(path, format)
	if err != nil {
		t.Fatal(err)
	}

	samples := []int16{0, 1000, -1000, 32767, -32768, 42}
	block := &audio.Block{
		PCM:     audio.S16Bytes(samples),
		Samples: len(samples) / 2,
		Format:  format,
	}
	if err := w.WriteBlock(block); err != nil {
		t.Fatal(err)
	}
	// Empty blocks are a normal decode result and must be a no-op
	if err := w.WriteBlock(&audio.Block{Format: format}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if int(dec.SampleRate) != 44100 || int(dec.NumChans) != 2 {
		t.Errorf("unexpected wav format: %d Hz %d ch", dec.SampleRate, dec.NumChans)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(buf.Data))
	}
	for i, s := range samples {
		if buf.Data[i] != int(s) {
			t.Errorf("sample %d: expected %d, got %d", i, s, buf.Data[i])
		}
	}
}

func TestCreateRejectsUnknownFormat(t *testing.T) {
	if _, err := Create(filepath.Join(t.TempDir(), "x.wav"), audio.Format{}); err == nil {
		t.Error("expected error for unestablished format")
	}
}

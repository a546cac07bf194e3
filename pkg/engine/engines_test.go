// ABOUTME: Tests for the MP2 and MP3 engine wrappers
// ABOUTME: Feed/open lifecycle guards and frame metadata tracking
package engine

import (
	"errors"
	"testing"

	mp3 "github.com/hajimehoshi/go-mp3"
)

func TestMP2ClosedGuards(t *testing.T) {
	eng := NewMP2()

	if err := eng.Feed([]byte{1, 2, 3}); !errors.Is(err, ErrFeedClosed) {
		t.Errorf("Feed before OpenFeed: got %v, want ErrFeedClosed", err)
	}
	if _, _, err := eng.DecodeFrame(); !errors.Is(err, ErrFeedClosed) {
		t.Errorf("DecodeFrame before OpenFeed: got %v, want ErrFeedClosed", err)
	}

	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}
	if err := eng.Close(); err != nil {
		t.Fatal(err)
	}
	if err := eng.Feed([]byte{1}); !errors.Is(err, ErrFeedClosed) {
		t.Errorf("Feed after Close: got %v, want ErrFeedClosed", err)
	}
}

func TestMP2NeedsInputBeforeHeader(t *testing.T) {
	eng := NewMP2()
	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}

	pcm, status, err := eng.DecodeFrame()
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusNeedMore {
		t.Errorf("expected StatusNeedMore on empty feed, got %v", status)
	}
	if len(pcm) != 0 {
		t.Errorf("expected no PCM, got %d bytes", len(pcm))
	}
}

func TestMP2TracksFrameInfo(t *testing.T) {
	eng := NewMP2()
	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}

	// MPEG-1 Layer II, 128 kbit/s, 44.1 kHz
	if err := eng.Feed(frame(t, 0xFD, 0x80, 0x00)); err != nil {
		t.Fatal(err)
	}

	info := eng.FrameInfo()
	if info.Bitrate != 128000 {
		t.Errorf("bitrate = %d, want 128000", info.Bitrate)
	}
	if info.Layer != LayerII {
		t.Errorf("layer = %v, want LayerII", info.Layer)
	}

	// Reopening drops the tracked metadata with the buffered input.
	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}
	if info := eng.FrameInfo(); info.Bitrate != 0 {
		t.Errorf("bitrate after reopen = %d, want 0", info.Bitrate)
	}
}

func TestMP3ToleratesGarbage(t *testing.T) {
	eng := NewMP3()
	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}

	if err := eng.Feed([]byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		t.Fatal(err)
	}
	pcm, status, err := eng.DecodeFrame()
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusNeedMore || len(pcm) != 0 {
		t.Errorf("garbage feed: status %v, %d bytes; want StatusNeedMore and no PCM", status, len(pcm))
	}
}

func TestMP3RejectsFeedOnceDecoderExists(t *testing.T) {
	eng := NewMP3()
	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}
	if err := eng.Feed([]byte{0xFF, 0xFB, 0x90, 0x00}); err != nil {
		t.Fatal(err)
	}

	// The decoder pins a snapshot of the fed bytes, so from this point on
	// accepting more input would silently truncate the stream.
	eng.dec = &mp3.Decoder{}

	if err := eng.Feed([]byte{1, 2, 3}); !errors.Is(err, ErrFeedAfterDecode) {
		t.Errorf("feed after decoder creation: got %v, want ErrFeedAfterDecode", err)
	}

	// Empty feeds carry nothing to lose and stay accepted.
	if err := eng.Feed(nil); err != nil {
		t.Errorf("empty feed: %v", err)
	}
}

func TestMP3FeedAfterDecodeRejected(t *testing.T) {
	eng := NewMP3()
	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}
	eng.draining = true

	if err := eng.Feed([]byte{1}); !errors.Is(err, ErrFeedAfterDecode) {
		t.Errorf("Feed while draining: got %v, want ErrFeedAfterDecode", err)
	}

	// A fresh feed accepts input again.
	if err := eng.OpenFeed(); err != nil {
		t.Fatal(err)
	}
	if err := eng.Feed([]byte{1}); err != nil {
		t.Errorf("Feed after reopen: %v", err)
	}
}

func TestMP3ClosedGuards(t *testing.T) {
	eng := NewMP3()
	if err := eng.Feed([]byte{1}); !errors.Is(err, ErrFeedClosed) {
		t.Errorf("Feed before OpenFeed: got %v, want ErrFeedClosed", err)
	}
	if _, _, err := eng.DecodeFrame(); !errors.Is(err, ErrFeedClosed) {
		t.Errorf("DecodeFrame before OpenFeed: got %v, want ErrFeedClosed", err)
	}
}

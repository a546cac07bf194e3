// ABOUTME: Tests for the running bitrate estimator
// ABOUTME: CBR direct publish, VBR throttled mean, saturation behavior
package mpegfeed

import (
	"math"
	"testing"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/engine"
)

func cbrFrame(bitrate int) engine.FrameInfo {
	return engine.FrameInfo{
		Bitrate:    bitrate,
		FrameSize:  417,
		SampleRate: 44100,
		Version:    engine.MPEG1,
		Layer:      engine.LayerIII,
	}
}

func vbrFrame(bitrate int) engine.FrameInfo {
	f := cbrFrame(bitrate)
	f.VBR = true
	return f
}

func TestCBRPublishesDirectlyEveryFrame(t *testing.T) {
	var e bitrateEstimator

	for i := 0; i < 10; i++ {
		if got := e.update(cbrFrame(128000)); got != 128000 {
			t.Fatalf("frame %d: expected 128000, got %d", i, got)
		}
	}
	if e.meanCount != 0 || e.meanRate != 0 {
		t.Errorf("CBR must keep the mean reset, got count=%d rate=%f",
			e.meanCount, e.meanRate)
	}
}

func TestCBRZeroBitrateUsesDerivedRate(t *testing.T) {
	info := cbrFrame(0)
	var e bitrateEstimator

	// (417 + 4) * 8 * 44100 / 1152 rounded
	expected := int(float64(info.FrameSize+4)*8*float64(info.SampleRate)/1152 + 0.5)
	if got := e.update(info); got != expected {
		t.Errorf("expected derived bitrate %d, got %d", expected, got)
	}
}

func TestDerivedRateLayerTable(t *testing.T) {
	tests := []struct {
		name    string
		version engine.Version
		layer   engine.Layer
		samples int
	}{
		{"v1 layer I", engine.MPEG1, engine.LayerI, 384},
		{"v1 layer II", engine.MPEG1, engine.LayerII, 1152},
		{"v1 layer III", engine.MPEG1, engine.LayerIII, 1152},
		{"v2 layer III", engine.MPEG2, engine.LayerIII, 576},
		{"v2.5 layer III", engine.MPEG25, engine.LayerIII, 576},
		{"v2 layer II", engine.MPEG2, engine.LayerII, 1152},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := samplesPerFrame(tt.version, tt.layer); got != tt.samples {
				t.Errorf("expected %d samples per frame, got %d", tt.samples, got)
			}
		})
	}
}

func TestVBRPublishesEveryTenthFrame(t *testing.T) {
	var e bitrateEstimator

	// First VBR frame publishes immediately (delay starts exhausted).
	if got := e.update(vbrFrame(1000)); got != 1000 {
		t.Fatalf("expected first frame to publish 1000, got %d", got)
	}

	// Frames 2..10 must not change the published value.
	for i := 2; i <= 10; i++ {
		if got := e.update(vbrFrame(1000 * i)); got != 1000 {
			t.Fatalf("frame %d: expected held value 1000, got %d", i, got)
		}
	}

	// Frame 11 folds its rate into the mean: (1000 + 11000) / 2.
	if got := e.update(vbrFrame(11000)); got != 6000 {
		t.Fatalf("frame 11: expected mean 6000, got %d", got)
	}

	for i := 12; i <= 20; i++ {
		if got := e.update(vbrFrame(1000 * i)); got != 6000 {
			t.Fatalf("frame %d: expected held value 6000, got %d", i, got)
		}
	}

	// Frame 21: (2*6000 + 21000) / 3.
	if got := e.update(vbrFrame(21000)); got != 11000 {
		t.Fatalf("frame 21: expected mean 11000, got %d", got)
	}
}

func TestVBRMeanStaysWithinObservedRange(t *testing.T) {
	var e bitrateEstimator

	rates := []int{32000, 320000}
	var published int
	for i := 0; i < 200; i++ {
		published = e.update(vbrFrame(rates[i%2]))
	}

	if published < 32000 || published > 320000 {
		t.Errorf("mean %d escaped the observed range", published)
	}
}

func TestMeanCounterSaturatesByHalving(t *testing.T) {
	e := bitrateEstimator{
		meanRate:  100000,
		meanCount: math.MaxUint32 / 2,
		delay:     1,
	}

	e.update(vbrFrame(100000))
	if e.meanCount != math.MaxUint32/4 {
		t.Errorf("expected counter %d, got %d", uint32(math.MaxUint32/4), e.meanCount)
	}
	if e.published != 100000 {
		t.Errorf("expected mean to stay at 100000, got %d", e.published)
	}
}

func TestCBRResetsVBRStatistics(t *testing.T) {
	var e bitrateEstimator

	for i := 0; i < 15; i++ {
		e.update(vbrFrame(200000))
	}
	if e.meanCount == 0 {
		t.Fatal("expected VBR statistics to accumulate")
	}

	if got := e.update(cbrFrame(128000)); got != 128000 {
		t.Fatalf("expected CBR rate 128000, got %d", got)
	}
	if e.meanCount != 0 || e.meanRate != 0 || e.delay != 1 {
		t.Fatalf("expected mean reset, got count=%d rate=%f delay=%d",
			e.meanCount, e.meanRate, e.delay)
	}

	// The next VBR frame starts its mean from that single sample.
	if got := e.update(vbrFrame(64000)); got != 64000 {
		t.Errorf("expected fresh mean 64000, got %d", got)
	}
}

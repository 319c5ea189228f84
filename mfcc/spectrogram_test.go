package mfcc

import (
	"math"
	"testing"
)

func TestPowerSpectrogramShape(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]float64, cfg.WindowSize+3*cfg.HopSize)

	spec, err := PowerSpectrogram(samples, cfg)
	if err != nil {
		t.Fatalf("PowerSpectrogram: %v", err)
	}
	if len(spec) != 4 {
		t.Fatalf("got %d frames, want 4", len(spec))
	}
	if len(spec[0]) != cfg.WindowSize/2+1 {
		t.Errorf("frame has %d bins, want %d", len(spec[0]), cfg.WindowSize/2+1)
	}
}

func TestPowerSpectrogramPeakBin(t *testing.T) {
	cfg := DefaultConfig()
	sampleRate := 22050
	freq := 1000.0

	samples := make([]float64, cfg.WindowSize*2)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}

	spec, err := PowerSpectrogram(samples, cfg)
	if err != nil {
		t.Fatalf("PowerSpectrogram: %v", err)
	}

	peak := 0
	for bin, p := range spec[0] {
		if p > spec[0][peak] {
			peak = bin
		}
	}
	wantBin := freq * float64(cfg.WindowSize) / float64(sampleRate)
	if math.Abs(float64(peak)-wantBin) > 2 {
		t.Errorf("peak at bin %d, want ~%.0f", peak, wantBin)
	}
}

func TestMelFilterbankShape(t *testing.T) {
	cfg := DefaultConfig()
	filters := MelFilterbank(22050, cfg)

	if len(filters) != cfg.NumMelBands {
		t.Fatalf("got %d filters, want %d", len(filters), cfg.NumMelBands)
	}
	for m, row := range filters {
		if len(row) != cfg.WindowSize/2+1 {
			t.Fatalf("filter %d has %d bins, want %d", m, len(row), cfg.WindowSize/2+1)
		}
	}
}

func TestMelFilterbankCoversSpectrum(t *testing.T) {
	cfg := DefaultConfig()
	filters := MelFilterbank(22050, cfg)

	prevPeak := -1
	for m, row := range filters {
		sum := 0.0
		peak := 0
		for bin, w := range row {
			if w < 0 || w > 1 {
				t.Fatalf("filter %d bin %d weight %v outside [0,1]", m, bin, w)
			}
			sum += w
			if w > row[peak] {
				peak = bin
			}
		}
		if sum == 0 {
			t.Fatalf("filter %d is empty", m)
		}
		// filter centers move upward with the band index
		if peak < prevPeak {
			t.Fatalf("filter %d peaks at bin %d, below previous %d", m, peak, prevPeak)
		}
		prevPeak = peak
	}
}

func TestMelScaleRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 100, 440, 1000, 8000, 11025} {
		back := melToHz(hzToMel(hz))
		if math.Abs(back-hz) > 1e-6 {
			t.Errorf("melToHz(hzToMel(%v)) = %v", hz, back)
		}
	}
}

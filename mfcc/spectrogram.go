package mfcc

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// PowerSpectrogram slices the sample stream into Hanning-windowed frames
// and returns the squared FFT magnitude of each: frames x (WindowSize/2+1).
func PowerSpectrogram(samples []float64, cfg ExtractionConfig) ([][]float64, error) {
	if len(samples) < cfg.WindowSize {
		return nil, errors.New("audio stream shorter than one analysis window")
	}

	window := make([]float64, cfg.WindowSize)
	for i := range window {
		theta := 2 * math.Pi * float64(i) / float64(cfg.WindowSize-1)
		window[i] = 0.5 - 0.5*math.Cos(theta) // hanning
	}

	fft := fourier.NewFFT(cfg.WindowSize)
	frame := make([]float64, cfg.WindowSize)

	spectrogram := make([][]float64, 0, len(samples)/cfg.HopSize)
	for start := 0; start+cfg.WindowSize <= len(samples); start += cfg.HopSize {
		copy(frame, samples[start:start+cfg.WindowSize])
		for j := range window {
			frame[j] *= window[j]
		}

		coeffs := fft.Coefficients(nil, frame)

		power := make([]float64, len(coeffs))
		for j, c := range coeffs {
			re, im := real(c), imag(c)
			power[j] = re*re + im*im
		}
		spectrogram = append(spectrogram, power)
	}

	return spectrogram, nil
}

// MelFilterbank builds NumMelBands triangular filters over the FFT bins,
// spaced evenly on the mel scale between MinFreqHz and MaxFreqHz.
// Each row is one filter across WindowSize/2+1 bins.
func MelFilterbank(sampleRate int, cfg ExtractionConfig) [][]float64 {
	numBins := cfg.WindowSize/2 + 1
	maxFreq := cfg.MaxFreqHz
	if maxFreq <= 0 || maxFreq > float64(sampleRate)/2 {
		maxFreq = float64(sampleRate) / 2
	}

	minMel := hzToMel(cfg.MinFreqHz)
	maxMel := hzToMel(maxFreq)

	// band edges: NumMelBands filters need NumMelBands+2 points
	edges := make([]float64, cfg.NumMelBands+2)
	for i := range edges {
		mel := minMel + (maxMel-minMel)*float64(i)/float64(len(edges)-1)
		edges[i] = melToHz(mel)
	}

	binFreq := func(bin int) float64 {
		return float64(bin) * float64(sampleRate) / float64(cfg.WindowSize)
	}

	filters := make([][]float64, cfg.NumMelBands)
	for m := range filters {
		lo, center, hi := edges[m], edges[m+1], edges[m+2]
		row := make([]float64, numBins)
		for bin := 0; bin < numBins; bin++ {
			f := binFreq(bin)
			switch {
			case f <= lo || f >= hi:
				// outside the triangle
			case f < center:
				row[bin] = (f - lo) / (center - lo)
			default:
				row[bin] = (hi - f) / (hi - center)
			}
		}
		filters[m] = row
	}

	return filters
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

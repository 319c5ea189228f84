package mfcc

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/dsp/fourier"

	"song-recommender/wav"
)

const logFloor = 1e-10 // keeps the log of silent mel bands finite

// Coefficients computes the cepstral coefficient matrix of a decoded
// waveform: NumCoefficients channels by however many frames the stream
// yields. The pipeline is power spectrogram -> mel filterbank -> log ->
// DCT-II, with the first NumCoefficients outputs kept per frame.
func Coefficients(samples []float64, sampleRate int, cfg ExtractionConfig) ([][]float64, error) {
	spectrogram, err := PowerSpectrogram(samples, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't compute spectrogram: %v", err)
	}

	filters := MelFilterbank(sampleRate, cfg)
	dct := fourier.NewDCT(cfg.NumMelBands)

	melEnergy := make([]float64, cfg.NumMelBands)
	cepstrum := make([]float64, cfg.NumMelBands)

	// channel-major so each channel's time series is contiguous for the
	// statistics pass
	coeffs := make([][]float64, cfg.NumCoefficients)
	for ch := range coeffs {
		coeffs[ch] = make([]float64, len(spectrogram))
	}

	for t, power := range spectrogram {
		for m, filter := range filters {
			var sum float64
			for bin, w := range filter {
				if w != 0 {
					sum += w * power[bin]
				}
			}
			melEnergy[m] = math.Log(sum + logFloor)
		}

		dct.Transform(cepstrum, melEnergy)

		for ch := 0; ch < cfg.NumCoefficients; ch++ {
			coeffs[ch][t] = cepstrum[ch]
		}
	}

	return coeffs, nil
}

// Descriptor reduces a cepstral coefficient matrix to the fixed-length
// summary vector: mean, max, min, and population standard deviation of
// each channel's time series, concatenated in that order.
//
// The ordering [means, maxes, mins, stds] is load-bearing: persisted
// descriptor blobs store vectors in this layout.
func Descriptor(coeffs [][]float64) ([]float64, error) {
	if len(coeffs) == 0 || len(coeffs[0]) == 0 {
		return nil, fmt.Errorf("empty coefficient matrix")
	}

	n := len(coeffs)
	descriptor := make([]float64, 4*n)

	for ch, series := range coeffs {
		data := stats.Float64Data(series)

		mean, err := stats.Mean(data)
		if err != nil {
			return nil, fmt.Errorf("channel %d mean: %v", ch, err)
		}
		max, err := stats.Max(data)
		if err != nil {
			return nil, fmt.Errorf("channel %d max: %v", ch, err)
		}
		min, err := stats.Min(data)
		if err != nil {
			return nil, fmt.Errorf("channel %d min: %v", ch, err)
		}
		std, err := stats.StandardDeviationPopulation(data)
		if err != nil {
			return nil, fmt.Errorf("channel %d std: %v", ch, err)
		}

		descriptor[ch] = mean
		descriptor[n+ch] = max
		descriptor[2*n+ch] = min
		descriptor[3*n+ch] = std
	}

	return descriptor, nil
}

// Extract runs the full per-file pipeline: decode the audio, compute
// cepstral coefficients, and reduce them to one descriptor. Any failure
// along the way is returned for the caller to treat as a skipped file.
func Extract(filePath string, cfg ExtractionConfig) ([]float64, error) {
	samples, sampleRate, err := wav.Decode(filePath)
	if err != nil {
		return nil, fmt.Errorf("decode: %v", err)
	}

	coeffs, err := Coefficients(samples, sampleRate, cfg)
	if err != nil {
		return nil, fmt.Errorf("cepstral transform: %v", err)
	}

	return Descriptor(coeffs)
}

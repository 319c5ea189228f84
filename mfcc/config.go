package mfcc

// ExtractionConfig controls all tunable parameters in the spectrogram,
// mel filterbank, and cepstral coefficient pipeline.
type ExtractionConfig struct {
	NumCoefficients int     // cepstral channels kept per frame
	NumMelBands     int     // triangular mel filters applied to each spectrum
	WindowSize      int     // FFT window size in samples (must be power of 2)
	HopSize         int     // samples between successive FFT frames
	MinFreqHz       float64 // lower edge of the mel filterbank
	MaxFreqHz       float64 // upper edge of the mel filterbank (0 = Nyquist)
}

// DescriptorSize is the length of the descriptor produced under this
// config: four statistics per cepstral channel.
func (c ExtractionConfig) DescriptorSize() int {
	return 4 * c.NumCoefficients
}

// DefaultConfig returns parameters matched to full-length music tracks:
// 20 cepstral channels summarised over ~93ms frames with 75% overlap.
func DefaultConfig() ExtractionConfig {
	return ExtractionConfig{
		NumCoefficients: 20,
		NumMelBands:     40,
		WindowSize:      2048, // ~93ms at 22050 Hz
		HopSize:         512,
		MinFreqHz:       0,
		MaxFreqHz:       0,
	}
}

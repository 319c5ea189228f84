package wav

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"time"
)

// DefaultSampleRate is the rate every track is resampled to before
// feature extraction. Descriptors are only comparable when all tracks
// share one rate.
const DefaultSampleRate = 22050

const decodeTimeout = 5 * time.Minute

// Decode converts any audio file ffmpeg understands into mono float64
// samples at DefaultSampleRate. Returns the samples and the sample rate
// they were decoded at.
func Decode(inputPath string) ([]float64, int, error) {
	return DecodeAtRate(inputPath, DefaultSampleRate)
}

// DecodeAtRate decodes inputPath to mono float64 samples at the given
// sample rate. A corrupt or unreadable file surfaces as an error; the
// caller decides whether that is fatal.
func DecodeAtRate(inputPath string, sampleRate int) ([]float64, int, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, 0, fmt.Errorf("input file does not exist: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), decodeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-hide_banner", "-v", "error",
		"-i", inputPath,
		"-ac", "1",
		"-ar", fmt.Sprint(sampleRate),
		"-f", "f32le",
		"pipe:1",
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, 0, fmt.Errorf("ffmpeg decode failed: %v, output: %s", err, stderr.String())
	}

	raw := out.Bytes()
	if len(raw) == 0 {
		return nil, 0, fmt.Errorf("ffmpeg produced an empty stream for %s", inputPath)
	}
	if len(raw)%4 != 0 {
		raw = raw[:len(raw)-len(raw)%4]
	}

	samples := make([]float64, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		samples[i] = float64(math.Float32frombits(bits))
	}

	return samples, sampleRate, nil
}

package wav

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/tidwall/gjson"
)

// AudioStream describes one stream entry from ffprobe output.
type AudioStream struct {
	CodecName  string
	SampleRate int
	Channels   int
}

// Format holds the container-level metadata of an audio file.
type Format struct {
	Filename string
	Duration float64
	Tags     map[string]string
}

// Metadata is the parsed result of an ffprobe run.
type Metadata struct {
	Format  Format
	Streams []AudioStream
}

// GetMetadata probes an audio file with ffprobe and parses the JSON output.
func GetMetadata(filePath string) (*Metadata, error) {
	cmd := exec.Command(
		"ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %v", filePath, err)
	}

	return parseMetadata(out)
}

func parseMetadata(raw []byte) (*Metadata, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("ffprobe returned invalid JSON")
	}

	meta := &Metadata{
		Format: Format{Tags: map[string]string{}},
	}

	format := gjson.GetBytes(raw, "format")
	meta.Format.Filename = format.Get("filename").String()
	meta.Format.Duration = format.Get("duration").Float()
	format.Get("tags").ForEach(func(key, value gjson.Result) bool {
		meta.Format.Tags[strings.ToLower(key.String())] = value.String()
		return true
	})

	_, err := jsonparser.ArrayEach(raw, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		codec, _ := jsonparser.GetString(value, "codec_name")
		rateStr, _ := jsonparser.GetString(value, "sample_rate")
		rate, _ := strconv.Atoi(rateStr)
		channels, _ := jsonparser.GetInt(value, "channels")
		meta.Streams = append(meta.Streams, AudioStream{
			CodecName:  codec,
			SampleRate: rate,
			Channels:   int(channels),
		})
	}, "streams")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("failed to parse ffprobe streams: %v", err)
	}

	return meta, nil
}

// GetAudioDuration returns the duration in seconds of any audio file
// by calling ffprobe.
func GetAudioDuration(inputPath string) (float64, error) {
	cmd := exec.Command(
		"ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration query failed: %v", err)
	}

	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

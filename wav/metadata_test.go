package wav

import (
	"math"
	"testing"
)

const sampleProbeOutput = `{
    "streams": [
        {
            "codec_name": "mp3",
            "sample_rate": "44100",
            "channels": 2
        }
    ],
    "format": {
        "filename": "fma_small/000/000002.mp3",
        "duration": "183.432000",
        "tags": {
            "title": "Food",
            "ARTIST": "AWOL",
            "album": "AWOL - A Way Of Life"
        }
    }
}`

func TestParseMetadata(t *testing.T) {
	meta, err := parseMetadata([]byte(sampleProbeOutput))
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}

	if meta.Format.Filename != "fma_small/000/000002.mp3" {
		t.Errorf("filename = %q", meta.Format.Filename)
	}
	if math.Abs(meta.Format.Duration-183.432) > 1e-9 {
		t.Errorf("duration = %v, want 183.432", meta.Format.Duration)
	}

	// tag keys are normalised to lower case
	if meta.Format.Tags["title"] != "Food" {
		t.Errorf(`tags["title"] = %q, want "Food"`, meta.Format.Tags["title"])
	}
	if meta.Format.Tags["artist"] != "AWOL" {
		t.Errorf(`tags["artist"] = %q, want "AWOL"`, meta.Format.Tags["artist"])
	}

	if len(meta.Streams) != 1 {
		t.Fatalf("got %d streams, want 1", len(meta.Streams))
	}
	s := meta.Streams[0]
	if s.CodecName != "mp3" || s.SampleRate != 44100 || s.Channels != 2 {
		t.Errorf("stream = %+v", s)
	}
}

func TestParseMetadataNoStreams(t *testing.T) {
	meta, err := parseMetadata([]byte(`{"format": {"filename": "x.mp3"}}`))
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if len(meta.Streams) != 0 {
		t.Errorf("got %d streams, want 0", len(meta.Streams))
	}
}

func TestParseMetadataInvalidJSON(t *testing.T) {
	if _, err := parseMetadata([]byte("ffprobe exploded")); err == nil {
		t.Error("invalid JSON should fail")
	}
}

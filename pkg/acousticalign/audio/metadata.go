package audio

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Metadata describes the first audio stream of a file as reported by ffprobe.
type Metadata struct {
	Filename    string  `json:"filename"`
	Format      string  `json:"format"`
	Codec       string  `json:"codec"`
	DurationSec float64 `json:"duration_sec"`
	SampleRate  int     `json:"sample_rate"`
	Channels    int     `json:"channels"`
	BitDepth    int     `json:"bit_depth"`
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		Format   string `json:"format_name"`
	} `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	CodecType     string `json:"codec_type"`
	CodecName     string `json:"codec_name"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	BitsPerSample int    `json:"bits_per_sample"`
}

func (p *ffprobeOutput) firstAudioStream() *ffprobeStream {
	for i := range p.Streams {
		if p.Streams[i].CodecType == "audio" {
			return &p.Streams[i]
		}
	}
	return nil
}

// ReadMetadataFFmpeg probes path with ffprobe.
func ReadMetadataFFmpeg(ctx context.Context, path string) (*Metadata, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(
		ctx,
		"ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	return parseProbe(path, out)
}

func parseProbe(path string, out []byte) (*Metadata, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, err
	}

	stream := probe.firstAudioStream()
	if stream == nil {
		return nil, errors.New("no audio stream found")
	}

	duration, _ := strconv.ParseFloat(probe.Format.Duration, 64)
	sampleRate, _ := strconv.Atoi(stream.SampleRate)

	return &Metadata{
		Filename:    filepath.Base(path),
		Format:      probe.Format.Format,
		Codec:       stream.CodecName,
		DurationSec: duration,
		SampleRate:  sampleRate,
		Channels:    stream.Channels,
		BitDepth:    stream.BitsPerSample,
	}, nil
}

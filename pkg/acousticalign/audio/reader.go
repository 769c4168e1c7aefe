package audio

import (
	"errors"
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
)

const wavFormatPCM = 1

var (
	// ErrNotWAV is returned for files without a RIFF/WAVE header.
	ErrNotWAV = errors.New("not a WAV/RIFF file")
	// ErrUnsupportedFormat is returned for WAV encodings other than integer PCM.
	// Such files can be converted with ConvertToMonoWAV first.
	ErrUnsupportedFormat = errors.New("unsupported WAV encoding: only integer PCM is supported")
)

// ReadWAV decodes an integer PCM WAV file into a mono signal normalized to
// [-1, 1]. Multi-channel audio is averaged down to one channel.
func ReadWAV(path string) (align.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return align.Signal{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return align.Signal{}, fmt.Errorf("%s: %w", path, ErrNotWAV)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return align.Signal{}, fmt.Errorf("%s: format %d: %w", path, dec.WavAudioFormat, ErrUnsupportedFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return align.Signal{}, fmt.Errorf("decoding PCM samples: %w", err)
	}

	channels := int(dec.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	samples, err := downmix(buf.Data, channels, int(dec.BitDepth))
	if err != nil {
		return align.Signal{}, fmt.Errorf("%s: %w", path, err)
	}

	return align.NewSignal(samples, int(dec.SampleRate))
}

// downmix averages interleaved integer frames into normalized mono samples.
func downmix(data []int, channels, bitDepth int) ([]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	toFloat, err := sampleScaler(bitDepth)
	if err != nil {
		return nil, err
	}

	frames := len(data) / channels
	out := make([]float64, frames)
	for i := range out {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += toFloat(data[i*channels+c])
		}
		out[i] = sum / float64(channels)
	}
	return out, nil
}

// sampleScaler maps raw integer samples at bitDepth onto [-1, 1].
// 8-bit WAV is unsigned, wider depths are two's complement.
func sampleScaler(bitDepth int) (func(int) float64, error) {
	switch bitDepth {
	case 8:
		return func(v int) float64 { return float64(v-128) / 128.0 }, nil
	case 16, 24, 32:
		scale := 1.0 / float64(int64(1)<<(bitDepth-1))
		return func(v int) float64 { return float64(v) * scale }, nil
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}

// intBuffer quantizes a mono signal to 16-bit PCM, clipping at full scale.
// It is the inverse of the 16-bit scaling in sampleScaler, so decoded samples
// survive a write and re-read unchanged.
func intBuffer(sig align.Signal) *goaudio.IntBuffer {
	data := make([]int, len(sig.Samples))
	for i, v := range sig.Samples {
		q := math.Round(v * 32768)
		data[i] = int(max(-32768, min(32767, q)))
	}
	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sig.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
}

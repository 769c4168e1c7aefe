package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
	"github.com/himanishpuri/AcousticAlign/pkg/utils"
)

// WriteWAV encodes sig as mono 16-bit PCM at path. The file is written next to
// its destination and renamed into place, so readers never see a partial file.
func WriteWAV(path string, sig align.Signal) error {
	if sig.SampleRate <= 0 {
		return fmt.Errorf("writing %s: invalid sample rate %d", path, sig.SampleRate)
	}

	dir := filepath.Dir(path)
	if err := utils.MakeDir(dir); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	enc := wav.NewEncoder(tmp, sig.SampleRate, 16, 1, wavFormatPCM)
	if err := enc.Write(intBuffer(sig)); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}

	return utils.MoveFile(tmpPath, path)
}

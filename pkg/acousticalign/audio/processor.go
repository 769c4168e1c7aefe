package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/himanishpuri/AcousticAlign/pkg/utils"
)

type ConvertWAVConfig struct {
	SampleRate int // 0 keeps the source rate
}

// ConvertToMonoWAV converts any ffmpeg-readable file to mono 16-bit PCM WAV in
// outputDir and returns the new path. Each call gets a unique file name, so
// two inputs sharing a base name do not collide.
func ConvertToMonoWAV(
	ctx context.Context,
	inputPath string,
	outputDir string,
	cfg ConvertWAVConfig,
) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
	}

	if err := utils.MakeDir(outputDir); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(outputDir, fmt.Sprintf("%s-%s.wav", base, uuid.NewString()[:8]))

	args := []string{"-y", "-v", "quiet", "-i", inputPath, "-ac", "1"}
	if cfg.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(cfg.SampleRate))
	}
	args = append(args, "-c:a", "pcm_s16le", outputPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed: %w (%s)", err, bytes.TrimSpace(out))
	}

	return outputPath, nil
}

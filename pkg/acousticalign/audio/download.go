package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"

	"github.com/himanishpuri/AcousticAlign/pkg/utils"
)

// DownloadAudio fetches the best audio stream behind url with yt-dlp and
// returns the path of the extracted WAV file in outputDir.
func DownloadAudio(ctx context.Context, url string, outputDir string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 3*time.Minute)
		defer cancel()
	}

	if err := utils.MakeDir(outputDir); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := uuid.NewString()
	if id, err := utils.ExtractYouTubeID(url); err == nil {
		name = id + "-" + name[:8]
	}

	dl := ytdlp.New().
		NoPlaylist().
		ExtractAudio().
		AudioFormat("wav").
		Output(filepath.Join(outputDir, name+".%(ext)s"))

	if _, err := dl.Run(ctx, url); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("yt-dlp download failed: %w", err)
	}

	path := filepath.Join(outputDir, name+".wav")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("downloaded audio not found at %s: %w", path, err)
	}
	return path, nil
}

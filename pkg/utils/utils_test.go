package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsToSamples(t *testing.T) {
	assert.Equal(t, 160, MsToSamples(10, 16000))
	assert.Equal(t, 400, MsToSamples(25, 16000))
	assert.Equal(t, 441, MsToSamples(10, 44100))
	assert.Equal(t, 1103, MsToSamples(25, 44100)) // 1102.5 rounds away from zero
	assert.Equal(t, 0, MsToSamples(0, 16000))
}

func TestSecToFrames(t *testing.T) {
	assert.Equal(t, 100, SecToFrames(1, 16000, 160))
	assert.Equal(t, 3000, SecToFrames(30, 16000, 160))
	assert.Equal(t, 2, SecToFrames(0.015, 16000, 160))
	assert.Equal(t, 0, SecToFrames(0, 16000, 160))
	assert.Equal(t, 0, SecToFrames(1, 16000, 0))
}

func TestSamplesToSec(t *testing.T) {
	assert.InDelta(t, 0.5, SamplesToSec(8000, 16000), 1e-12)
	assert.Equal(t, 0.0, SamplesToSec(8000, 0))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://www.youtube.com/watch?v=abc"))
	assert.True(t, IsURL("http://example.com/a.wav"))
	assert.False(t, IsURL("/tmp/a.wav"))
	assert.False(t, IsURL("a.wav"))
	assert.False(t, IsURL("file:///tmp/a.wav"))
	assert.False(t, IsURL("C:\\music\\a.wav"))
}

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ?t=10", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/shorts/abc123", "abc123", false},
		{"https://youtu.be/", "", true},
		{"https://www.youtube.com/watch", "", true},
		{"https://vimeo.com/12345", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := ExtractYouTubeID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, IsYouTubeURL("https://YouTube.com/watch?v=x"))
	assert.True(t, IsYouTubeURL("https://youtu.be/x"))
	assert.False(t, IsYouTubeURL("https://example.com"))
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, MakeDir(nested))

	src := filepath.Join(nested, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))
	assert.True(t, FileExists(src))
	assert.False(t, FileExists(nested))

	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, MoveFile(src, dst))
	assert.False(t, FileExists(src))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, DeleteFile(dst))
	require.NoError(t, DeleteFile(dst))

	require.NoError(t, DeleteDir(filepath.Join(dir, "a")))
	_, err = os.Stat(nested)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMoveFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, MoveFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")))
}

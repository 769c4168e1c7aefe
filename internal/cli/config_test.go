package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
)

func testCommand(root *RootOptions, tuning *tuningFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&root.DBPath, "db", "", "")
	cmd.Flags().StringVar(&root.TempDir, "temp", "", "")
	cmd.Flags().StringVar(&tuning.alignHow, "align-how", "pad_both", "")
	addTuningFlags(cmd, tuning)
	return cmd
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "acousticalign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveSettingsDefaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvTempDir, "")

	root := &RootOptions{}
	var tuning tuningFlags
	cmd := testCommand(root, &tuning)
	require.NoError(t, cmd.ParseFlags(nil))

	s, err := resolveSettings(cmd, root, &tuning)
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), s)
}

func TestResolveSettingsPrecedence(t *testing.T) {
	cfg := writeConfig(t, `
db_path: file.db
temp_dir: /file/tmp
hop_ms: 20
window_ms: 50
align_how: crop_both
method: fft
history: true
`)
	t.Setenv(EnvDBPath, "env.db")
	t.Setenv(EnvTempDir, "")

	root := &RootOptions{ConfigPath: cfg}
	var tuning tuningFlags
	cmd := testCommand(root, &tuning)
	require.NoError(t, cmd.ParseFlags([]string{"--hop-ms", "5"}))

	s, err := resolveSettings(cmd, root, &tuning)
	require.NoError(t, err)

	assert.Equal(t, 5.0, s.HopMs, "flag beats file")
	assert.Equal(t, "env.db", s.DBPath, "env beats file")
	assert.Equal(t, "/file/tmp", s.TempDir, "file beats default")
	assert.Equal(t, 50.0, s.WindowMs)
	assert.Equal(t, "crop_both", s.AlignHow)
	assert.Equal(t, "fft", s.Method)
	assert.True(t, s.History)
	assert.Equal(t, 1.0, s.MinOverlapSec, "default kept")

	cmd = testCommand(root, &tuning)
	require.NoError(t, cmd.ParseFlags([]string{"--db", "flag.db", "--align-how", "match_reference", "--rate", "16000"}))
	s, err = resolveSettings(cmd, root, &tuning)
	require.NoError(t, err)
	assert.Equal(t, "flag.db", s.DBPath, "flag beats env")
	assert.Equal(t, "match_reference", s.AlignHow)
	assert.Equal(t, 16000, s.SampleRate)
}

func TestLoadFileConfig(t *testing.T) {
	fc, err := LoadFileConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Nil(t, fc.HopMs)

	_, err = LoadFileConfig(writeConfig(t, "hop_size: 10\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = LoadFileConfig(writeConfig(t, "hop_ms: [1, 2]\n"))
	assert.Error(t, err)

	_, err = LoadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSettingsOptions(t *testing.T) {
	s := defaultSettings()
	opts, err := s.Options()
	require.NoError(t, err)
	assert.NotEmpty(t, opts)

	s.AlignHow = "pad_and_crop_one_to_match_other"
	_, err = s.Options()
	assert.NoError(t, err)

	s.AlignHow = "stretch"
	_, err = s.Options()
	assert.ErrorIs(t, err, align.ErrInvalidInput)

	s = defaultSettings()
	s.Method = "wavelet"
	_, err = s.Options()
	assert.ErrorIs(t, err, align.ErrInvalidInput)
}

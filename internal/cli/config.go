package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign"
	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
)

// Environment variables read by the CLI.
const (
	EnvDBPath  = "ACOUSTICALIGN_DB_PATH"
	EnvTempDir = "ACOUSTICALIGN_TEMP_DIR"
)

// FileConfig is the YAML configuration file. Unset keys keep their defaults.
type FileConfig struct {
	DBPath        *string  `yaml:"db_path"`
	TempDir       *string  `yaml:"temp_dir"`
	SampleRate    *int     `yaml:"sample_rate"`
	HopMs         *float64 `yaml:"hop_ms"`
	WindowMs      *float64 `yaml:"window_ms"`
	MinOverlapSec *float64 `yaml:"min_overlap_sec"`
	MaxShiftSec   *float64 `yaml:"max_shift_sec"`
	AlignHow      *string  `yaml:"align_how"`
	Method        *string  `yaml:"method"`
	History       *bool    `yaml:"history"`
}

// Settings is the resolved CLI configuration.
// Precedence: flags, then environment, then config file, then defaults.
type Settings struct {
	DBPath        string  `json:"db_path"`
	TempDir       string  `json:"temp_dir"`
	SampleRate    int     `json:"sample_rate"`
	HopMs         float64 `json:"hop_ms"`
	WindowMs      float64 `json:"window_ms"`
	MinOverlapSec float64 `json:"min_overlap_sec"`
	MaxShiftSec   float64 `json:"max_shift_sec"`
	AlignHow      string  `json:"align_how"`
	Method        string  `json:"method"`
	History       bool    `json:"history"`
}

func defaultSettings() Settings {
	return Settings{
		DBPath:        acousticalign.DefaultDBPath,
		TempDir:       os.TempDir(),
		HopMs:         acousticalign.DefaultHopMs,
		WindowMs:      acousticalign.DefaultWindowMs,
		MinOverlapSec: acousticalign.DefaultMinOverlapSec,
		MaxShiftSec:   acousticalign.DefaultMaxShiftSec,
		AlignHow:      align.ModePadBoth.String(),
		Method:        align.MethodAuto.String(),
	}
}

// LoadFileConfig reads a YAML config file, rejecting unknown keys.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}

func (s *Settings) applyFile(fc *FileConfig) {
	if fc == nil {
		return
	}
	setIf(&s.DBPath, fc.DBPath)
	setIf(&s.TempDir, fc.TempDir)
	setIf(&s.SampleRate, fc.SampleRate)
	setIf(&s.HopMs, fc.HopMs)
	setIf(&s.WindowMs, fc.WindowMs)
	setIf(&s.MinOverlapSec, fc.MinOverlapSec)
	setIf(&s.MaxShiftSec, fc.MaxShiftSec)
	setIf(&s.AlignHow, fc.AlignHow)
	setIf(&s.Method, fc.Method)
	setIf(&s.History, fc.History)
}

func (s *Settings) applyEnv(getenv func(string) string) {
	if v := getenv(EnvDBPath); v != "" {
		s.DBPath = v
	}
	if v := getenv(EnvTempDir); v != "" {
		s.TempDir = v
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// tuningFlags are the alignment parameters shared by align and shift.
type tuningFlags struct {
	alignHow      string
	method        string
	hopMs         float64
	windowMs      float64
	minOverlapSec float64
	maxShiftSec   float64
	sampleRate    int
}

func addTuningFlags(cmd *cobra.Command, t *tuningFlags) {
	d := defaultSettings()
	cmd.Flags().StringVar(&t.method, "method", d.Method, "correlation method (auto|direct|fft)")
	cmd.Flags().Float64Var(&t.hopMs, "hop-ms", d.HopMs, "envelope hop in milliseconds")
	cmd.Flags().Float64Var(&t.windowMs, "win-ms", d.WindowMs, "envelope window in milliseconds")
	cmd.Flags().Float64Var(&t.minOverlapSec, "min-overlap-sec", d.MinOverlapSec, "minimum overlap between the recordings in seconds")
	cmd.Flags().Float64Var(&t.maxShiftSec, "max-shift-sec", d.MaxShiftSec, "largest offset between input centres in seconds (0 = unbounded)")
	cmd.Flags().IntVar(&t.sampleRate, "rate", 0, "resample both inputs to this rate with ffmpeg (0 = keep native)")
}

// resolveSettings merges defaults, the config file, the environment and the
// flags the user actually set on cmd.
func resolveSettings(cmd *cobra.Command, root *RootOptions, t *tuningFlags) (Settings, error) {
	s := defaultSettings()

	if root.ConfigPath != "" {
		fc, err := LoadFileConfig(root.ConfigPath)
		if err != nil {
			return s, err
		}
		s.applyFile(fc)
	}

	s.applyEnv(os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("db") {
		s.DBPath = root.DBPath
	}
	if flags.Changed("temp") {
		s.TempDir = root.TempDir
	}
	if t == nil {
		return s, nil
	}
	if flags.Changed("align-how") {
		s.AlignHow = t.alignHow
	}
	if flags.Changed("method") {
		s.Method = t.method
	}
	if flags.Changed("hop-ms") {
		s.HopMs = t.hopMs
	}
	if flags.Changed("win-ms") {
		s.WindowMs = t.windowMs
	}
	if flags.Changed("min-overlap-sec") {
		s.MinOverlapSec = t.minOverlapSec
	}
	if flags.Changed("max-shift-sec") {
		s.MaxShiftSec = t.maxShiftSec
	}
	if flags.Changed("rate") {
		s.SampleRate = t.sampleRate
	}
	return s, nil
}

// Options converts s into service options.
func (s Settings) Options() ([]acousticalign.Option, error) {
	mode, err := align.ParseMode(s.AlignHow)
	if err != nil {
		return nil, err
	}
	method, err := align.ParseMethod(s.Method)
	if err != nil {
		return nil, err
	}

	return []acousticalign.Option{
		acousticalign.WithDBPath(s.DBPath),
		acousticalign.WithTempDir(s.TempDir),
		acousticalign.WithSampleRate(s.SampleRate),
		acousticalign.WithHopMs(s.HopMs),
		acousticalign.WithWindowMs(s.WindowMs),
		acousticalign.WithMinOverlapSec(s.MinOverlapSec),
		acousticalign.WithMaxShiftSec(s.MaxShiftSec),
		acousticalign.WithMode(mode),
		acousticalign.WithMethod(method),
		acousticalign.WithHistory(s.History),
	}, nil
}

package acousticalign

import (
	"fmt"
	"os"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
	"github.com/himanishpuri/AcousticAlign/pkg/utils"
)

const (
	DefaultDBPath        = "acousticalign.sqlite3"
	DefaultHopMs         = 10.0
	DefaultWindowMs      = 25.0
	DefaultMinOverlapSec = 1.0
	DefaultMaxShiftSec   = 30.0
)

type Config struct {
	DBPath        string
	TempDir       string
	SampleRate    int // 0 keeps each input's native rate
	HopMs         float64
	WindowMs      float64
	MinOverlapSec float64
	MaxShiftSec   float64 // largest offset between input centres; 0 disables the bound
	Mode          align.AlignMode
	Method        align.Method
	History       bool
	Logger        Logger
	Storage       Storage
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

// WithSampleRate resamples every input to rate with ffmpeg before alignment.
func WithSampleRate(rate int) Option {
	return func(c *Config) {
		c.SampleRate = rate
	}
}

func WithHopMs(ms float64) Option {
	return func(c *Config) {
		c.HopMs = ms
	}
}

func WithWindowMs(ms float64) Option {
	return func(c *Config) {
		c.WindowMs = ms
	}
}

func WithMinOverlapSec(sec float64) Option {
	return func(c *Config) {
		c.MinOverlapSec = sec
	}
}

func WithMaxShiftSec(sec float64) Option {
	return func(c *Config) {
		c.MaxShiftSec = sec
	}
}

func WithMode(mode align.AlignMode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

func WithMethod(m align.Method) Option {
	return func(c *Config) {
		c.Method = m
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithStorage records history in storage. It implies WithHistory(true).
func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
		c.History = storage != nil
	}
}

// WithHistory records every file alignment in the SQLite database at DBPath.
func WithHistory(enabled bool) Option {
	return func(c *Config) {
		c.History = enabled
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:        DefaultDBPath,
		TempDir:       os.TempDir(),
		HopMs:         DefaultHopMs,
		WindowMs:      DefaultWindowMs,
		MinOverlapSec: DefaultMinOverlapSec,
		MaxShiftSec:   DefaultMaxShiftSec,
		Mode:          align.ModePadBoth,
		Method:        align.MethodAuto,
	}
}

func (c *Config) validate() error {
	switch {
	case c.HopMs <= 0:
		return &align.InvalidInputError{Param: "hop_ms", Value: c.HopMs, Reason: "must be positive"}
	case c.WindowMs <= 0:
		return &align.InvalidInputError{Param: "window_ms", Value: c.WindowMs, Reason: "must be positive"}
	case c.MinOverlapSec < 0:
		return &align.InvalidInputError{Param: "min_overlap_sec", Value: c.MinOverlapSec, Reason: "must not be negative"}
	case c.MaxShiftSec < 0:
		return &align.InvalidInputError{Param: "max_shift_sec", Value: c.MaxShiftSec, Reason: "must not be negative"}
	case c.SampleRate < 0:
		return &align.InvalidInputError{Param: "sample_rate", Value: c.SampleRate, Reason: "must not be negative"}
	case !c.Mode.Valid():
		return &align.InvalidInputError{Param: "mode", Value: int(c.Mode), Reason: "unknown alignment mode"}
	}
	return nil
}

// Params are the sample-domain settings for one alignment at a given rate.
type Params struct {
	SampleRate       int
	Hop              int
	Window           int
	MinOverlapFrames int
	MaxShiftFrames   int
	Method           align.Method
}

// Options returns the lag search options for p.
func (p Params) Options() []align.Option {
	return []align.Option{
		align.WithMinOverlap(p.MinOverlapFrames),
		align.WithMaxShift(p.MaxShiftFrames),
		align.WithMethod(p.Method),
	}
}

// params converts the time-based settings into samples and frames at rate.
func (c *Config) params(rate int) (Params, error) {
	p := Params{
		SampleRate: rate,
		Hop:        utils.MsToSamples(c.HopMs, rate),
		Window:     utils.MsToSamples(c.WindowMs, rate),
		Method:     c.Method,
	}
	if p.Hop <= 0 {
		return p, &align.InvalidInputError{
			Param:  "hop_ms",
			Value:  c.HopMs,
			Reason: fmt.Sprintf("rounds to %d samples at %d Hz", p.Hop, rate),
		}
	}
	if p.Window <= 0 {
		return p, &align.InvalidInputError{
			Param:  "window_ms",
			Value:  c.WindowMs,
			Reason: fmt.Sprintf("rounds to %d samples at %d Hz", p.Window, rate),
		}
	}
	p.MinOverlapFrames = utils.SecToFrames(c.MinOverlapSec, rate, p.Hop)
	p.MaxShiftFrames = utils.SecToFrames(c.MaxShiftSec, rate, p.Hop)
	return p, nil
}

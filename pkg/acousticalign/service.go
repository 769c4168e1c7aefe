package acousticalign

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/audio"
	"github.com/himanishpuri/AcousticAlign/pkg/logger"
	"github.com/himanishpuri/AcousticAlign/pkg/utils"
)

// alignService is the default implementation of the Service interface.
type alignService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	stor := cfg.Storage
	if cfg.History && stor == nil {
		var err error
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &alignService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// AlignFiles loads both inputs, aligns them and writes the aligned pair as
// mono 16-bit WAV. The run is recorded when history is enabled.
func (s *alignService) AlignFiles(ctx context.Context, req AlignRequest) (*AlignResult, error) {
	if req.InputA == "" || req.InputB == "" {
		return nil, &align.InvalidInputError{
			Param:  "inputs",
			Value:  []string{req.InputA, req.InputB},
			Reason: "two inputs are required",
		}
	}

	outA, outB := req.OutputA, req.OutputB
	if outA == "" {
		outA = DefaultOutputPath(req.InputA)
	}
	if outB == "" {
		outB = DefaultOutputPath(req.InputB)
	}
	if outA == outB {
		return nil, &align.InvalidInputError{Param: "outputs", Value: outA, Reason: "both outputs point to the same file"}
	}

	s.log.Infof("Aligning %s and %s (mode=%s)", req.InputA, req.InputB, s.config.Mode)

	a, b, err := s.loadPair(ctx, req.InputA, req.InputB)
	if err != nil {
		return nil, err
	}

	res, err := s.AlignSignals(ctx, a, b)
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.Go(func() error { return audio.WriteWAV(outA, res.Aligned.A) })
	g.Go(func() error { return audio.WriteWAV(outB, res.Aligned.B) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("writing aligned audio: %w", err)
	}
	res.OutputA, res.OutputB = outA, outB
	s.log.Infof("Wrote %s and %s (%d samples each)", outA, outB, res.OutputLength)

	if s.storage != nil {
		id, err := s.storage.SaveAlignment(s.record(req, res))
		if err != nil {
			s.log.Warnf("Failed to record alignment: %v", err)
		} else {
			res.ID = id
			s.log.Debugf("Recorded alignment %s", id)
		}
	}

	return res, nil
}

// AlignSignals aligns two in-memory signals. Nothing is written or recorded.
func (s *alignService) AlignSignals(ctx context.Context, a, b align.Signal) (*AlignResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.paramsFor(a)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("hop=%d window=%d min_overlap=%d max_shift=%d frames method=%s",
		p.Hop, p.Window, p.MinOverlapFrames, p.MaxShiftFrames, p.Method)

	res, err := align.ShiftAlign(a, b, s.config.Mode, p.Hop, p.Window, p.Options()...)
	if err != nil {
		return nil, err
	}

	out := &AlignResult{
		ShiftResult:  shiftResult(res.Lag, res.Shift, p),
		Mode:         s.config.Mode,
		OutputLength: res.Len(),
		Aligned:      res.AlignedPair,
	}
	s.log.Infof("Shift: %d samples (%.1f ms), score=%.6g over %d frames",
		out.ShiftSamples, out.ShiftMs, out.Score, out.Overlap)
	return out, nil
}

// EstimateShift reports the offset of inputB relative to inputA without
// reconstructing or writing anything.
func (s *alignService) EstimateShift(ctx context.Context, inputA, inputB string) (*ShiftResult, error) {
	a, b, err := s.loadPair(ctx, inputA, inputB)
	if err != nil {
		return nil, err
	}

	p, err := s.paramsFor(a)
	if err != nil {
		return nil, err
	}

	lag, err := align.Estimate(a, b, p.Hop, p.Window, p.Options()...)
	if err != nil {
		return nil, err
	}
	shift, err := align.ResolveShift(lag, p.Hop)
	if err != nil {
		return nil, err
	}

	res := shiftResult(lag, shift, p)
	s.log.Infof("Shift: %d samples (%.1f ms)", res.ShiftSamples, res.ShiftMs)
	return &res, nil
}

func (s *alignService) GetAlignment(id string) (*Alignment, error) {
	if s.storage == nil {
		return nil, ErrHistoryDisabled
	}
	return s.storage.GetAlignment(id)
}

func (s *alignService) ListAlignments(limit int) ([]Alignment, error) {
	if s.storage == nil {
		return nil, ErrHistoryDisabled
	}
	return s.storage.ListAlignments(limit)
}

func (s *alignService) CountAlignments() (int, error) {
	if s.storage == nil {
		return 0, ErrHistoryDisabled
	}
	return s.storage.CountAlignments()
}

func (s *alignService) DeleteAlignment(id string) error {
	if s.storage == nil {
		return ErrHistoryDisabled
	}
	if err := s.storage.DeleteAlignment(id); err != nil {
		return err
	}
	s.log.Infof("Deleted alignment %s", id)
	return nil
}

func (s *alignService) Close() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Close()
}

// paramsFor converts the configured durations at a's sample rate.
func (s *alignService) paramsFor(a align.Signal) (Params, error) {
	if a.SampleRate <= 0 {
		return Params{}, &align.InvalidInputError{
			Param:  "signal_a.sample_rate",
			Value:  a.SampleRate,
			Reason: "must be positive",
		}
	}
	return s.config.params(a.SampleRate)
}

// loadPair loads both inputs concurrently into a scratch directory that is
// removed before returning.
func (s *alignService) loadPair(ctx context.Context, inputA, inputB string) (align.Signal, align.Signal, error) {
	if err := utils.MakeDir(s.config.TempDir); err != nil {
		return align.Signal{}, align.Signal{}, fmt.Errorf("creating temp dir: %w", err)
	}
	workDir, err := os.MkdirTemp(s.config.TempDir, "acousticalign-")
	if err != nil {
		return align.Signal{}, align.Signal{}, fmt.Errorf("creating work dir: %w", err)
	}
	defer func() {
		if err := utils.DeleteDir(workDir); err != nil {
			s.log.Warnf("Failed to remove %s: %v", workDir, err)
		}
	}()

	var a, b align.Signal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.loadInput(gctx, inputA, workDir)
		if err != nil {
			return fmt.Errorf("loading %s: %w", inputA, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		b, err = s.loadInput(gctx, inputB, workDir)
		if err != nil {
			return fmt.Errorf("loading %s: %w", inputB, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return align.Signal{}, align.Signal{}, err
	}

	s.log.Debugf("Loaded A: %d samples @ %d Hz, B: %d samples @ %d Hz",
		a.Len(), a.SampleRate, b.Len(), b.SampleRate)
	return a, b, nil
}

// loadInput returns input as a mono signal. PCM WAV files already at the
// working rate are decoded directly; everything else goes through ffmpeg.
func (s *alignService) loadInput(ctx context.Context, input, workDir string) (align.Signal, error) {
	path := input
	if utils.IsURL(input) {
		s.log.Infof("Downloading %s", input)
		downloaded, err := audio.DownloadAudio(ctx, input, workDir)
		if err != nil {
			return align.Signal{}, err
		}
		path = downloaded
	} else if !utils.FileExists(input) {
		return align.Signal{}, fmt.Errorf("%s: %w", input, os.ErrNotExist)
	}

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		sig, err := audio.ReadWAV(path)
		switch {
		case err == nil && (s.config.SampleRate == 0 || sig.SampleRate == s.config.SampleRate):
			return sig, nil
		case err == nil:
			s.log.Debugf("Resampling %s from %d Hz to %d Hz", path, sig.SampleRate, s.config.SampleRate)
		case errors.Is(err, audio.ErrUnsupportedFormat), errors.Is(err, audio.ErrNotWAV):
			s.log.Debugf("Converting %s: %v", path, err)
		default:
			return align.Signal{}, err
		}
	}

	wavPath, err := audio.ConvertToMonoWAV(ctx, path, workDir, audio.ConvertWAVConfig{
		SampleRate: s.config.SampleRate,
	})
	if err != nil {
		return align.Signal{}, fmt.Errorf("audio conversion failed: %w", err)
	}
	return audio.ReadWAV(wavPath)
}

func (s *alignService) record(req AlignRequest, res *AlignResult) Alignment {
	return Alignment{
		InputA:       displayPath(req.InputA),
		InputB:       displayPath(req.InputB),
		OutputA:      displayPath(res.OutputA),
		OutputB:      displayPath(res.OutputB),
		Mode:         res.Mode.String(),
		Method:       s.config.Method.String(),
		SampleRate:   res.SampleRate,
		Hop:          res.Hop,
		Window:       res.Window,
		ShiftSamples: res.ShiftSamples,
		LagFrames:    res.LagFrames,
		Score:        res.Score,
		Overlap:      res.Overlap,
		OutputLength: res.OutputLength,
	}
}

func shiftResult(lag align.LagEstimate, shift align.SampleShift, p Params) ShiftResult {
	return ShiftResult{
		ShiftSamples: int(shift),
		ShiftMs:      shiftMs(int(shift), p.SampleRate),
		LagFrames:    lag.Frames,
		Score:        lag.Score,
		Overlap:      lag.Overlap,
		SampleRate:   p.SampleRate,
		Hop:          p.Hop,
		Window:       p.Window,
	}
}

// DefaultOutputPath is where the aligned version of input goes when no
// output is given: "<name>_aligned.wav" next to a local input, or in the
// working directory for a URL.
func DefaultOutputPath(input string) string {
	if utils.IsURL(input) {
		name := "download"
		if id, err := utils.ExtractYouTubeID(input); err == nil {
			name = id
		}
		return name + "_aligned.wav"
	}
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return stem + "_aligned.wav"
}

func displayPath(p string) string {
	if p == "" || utils.IsURL(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

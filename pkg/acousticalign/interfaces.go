package acousticalign

import (
	"context"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
)

type Service interface {
	AlignFiles(ctx context.Context, req AlignRequest) (*AlignResult, error)
	AlignSignals(ctx context.Context, a, b align.Signal) (*AlignResult, error)
	EstimateShift(ctx context.Context, inputA, inputB string) (*ShiftResult, error)
	GetAlignment(id string) (*Alignment, error)
	ListAlignments(limit int) ([]Alignment, error)
	CountAlignments() (int, error)
	DeleteAlignment(id string) error
	Close() error
}

type Storage interface {
	SaveAlignment(rec Alignment) (string, error)
	GetAlignment(id string) (*Alignment, error)
	ListAlignments(limit int) ([]Alignment, error)
	CountAlignments() (int, error)
	DeleteAlignment(id string) error
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

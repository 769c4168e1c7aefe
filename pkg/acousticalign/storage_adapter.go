//go:build !js && !wasm
// +build !js,!wasm

package acousticalign

import (
	"errors"
	"fmt"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/storage"
)

// storageAdapter adapts the storage.DBClient to implement the Storage interface.
type storageAdapter struct {
	db *storage.DBClient
}

// NewSQLiteStorage creates a new SQLite storage backend.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	db, err := storage.NewDBClientWithPath(dbPath)
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db}, nil
}

func (s *storageAdapter) SaveAlignment(rec Alignment) (string, error) {
	row := storage.Alignment(rec)
	return s.db.SaveAlignment(&row)
}

func (s *storageAdapter) GetAlignment(id string) (*Alignment, error) {
	row, err := s.db.GetAlignment(id)
	if err != nil {
		return nil, translateErr(id, err)
	}
	rec := Alignment(*row)
	return &rec, nil
}

func (s *storageAdapter) ListAlignments(limit int) ([]Alignment, error) {
	rows, err := s.db.ListAlignments(limit)
	if err != nil {
		return nil, err
	}
	out := make([]Alignment, len(rows))
	for i, row := range rows {
		out[i] = Alignment(row)
	}
	return out, nil
}

func (s *storageAdapter) CountAlignments() (int, error) {
	return s.db.CountAlignments()
}

func (s *storageAdapter) DeleteAlignment(id string) error {
	return translateErr(id, s.db.DeleteAlignment(id))
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}

func translateErr(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return err
}

//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const errDBClientNil = "db client is nil"

// ErrNotFound is returned when no alignment has the requested ID.
var ErrNotFound = errors.New("alignment not found")

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

// Alignment is one recorded run of the aligner.
type Alignment struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	InputA       string    `json:"input_a"`
	InputB       string    `json:"input_b"`
	OutputA      string    `json:"output_a"`
	OutputB      string    `json:"output_b"`
	Mode         string    `gorm:"index:idx_alignment_mode" json:"mode"`
	Method       string    `json:"method"`
	SampleRate   int       `json:"sample_rate"`
	Hop          int       `json:"hop"`
	Window       int       `json:"window"`
	ShiftSamples int       `json:"shift_samples"`
	LagFrames    int       `json:"lag_frames"`
	Score        float64   `json:"score"`
	Overlap      int       `json:"overlap"`
	OutputLength int       `json:"output_length"`
	CreatedAt    time.Time `gorm:"index:idx_alignment_created" json:"created_at"`
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	// SQLite allows a single writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Alignment{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// SaveAlignment inserts rec, assigning a fresh ID and timestamp when unset,
// and returns the stored ID.
func (c *DBClient) SaveAlignment(rec *Alignment) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := c.DB.Create(rec).Error; err != nil {
		return "", fmt.Errorf("creating alignment: %w", err)
	}
	return rec.ID, nil
}

func (c *DBClient) GetAlignment(id string) (*Alignment, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var rec Alignment
	if err := c.DB.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("querying alignment: %w", err)
	}
	return &rec, nil
}

// ListAlignments returns the most recent alignments first. limit <= 0 returns all.
func (c *DBClient) ListAlignments(limit int) ([]Alignment, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	q := c.DB.Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Alignment
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing alignments: %w", err)
	}
	return rows, nil
}

func (c *DBClient) DeleteAlignment(id string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	res := c.DB.Where("id = ?", id).Delete(&Alignment{})
	if res.Error != nil {
		return fmt.Errorf("deleting alignment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// CountAlignments returns the number of stored alignments.
func (c *DBClient) CountAlignments() (int, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}
	var n int64
	if err := c.DB.Model(&Alignment{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

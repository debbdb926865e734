package domain

import (
	"errors"
	"time"
)

var (
	// ErrPaused is returned by scan and batch runs while the system is paused.
	ErrPaused = errors.New("system is paused")
	// ErrNotFound is returned when an item is unknown to the catalog or the mirror.
	ErrNotFound = errors.New("not found")
	// ErrBusy is returned when another scan or batch holds the pipeline lock.
	ErrBusy = errors.New("pipeline is busy")
)

// SystemState is the singleton control record.
type SystemState struct {
	IsPaused            bool       `db:"is_paused" json:"is_paused"`
	AutoPauseTriggered  bool       `db:"auto_pause_triggered" json:"auto_pause_triggered"`
	LastScanAt          *time.Time `db:"last_scan_at" json:"last_scan_at,omitempty"`
	LastScanProducts    int        `db:"last_scan_products" json:"last_scan_products"`
	LastScanCollections int        `db:"last_scan_collections" json:"last_scan_collections"`
	LastScanNew         int        `db:"last_scan_new" json:"last_scan_new"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// ScanRecord is what a scan writes into SystemState regardless of outcome.
type ScanRecord struct {
	ScannedAt time.Time
	Found     map[Kind]int
	NewCount  int
}

// ScanStats holds statistics about a scan run.
type ScanStats struct {
	Found          map[Kind]int
	New            map[Kind]int
	NewCount       int
	ListErrors     int
	BreakerTripped bool
	Batch          *BatchStats
	Duration       time.Duration
}

// BatchStats holds statistics about a batch run.
type BatchStats struct {
	RunID     string
	Selected  int
	Processed int
	Completed int
	Failed    int
	Abandoned int
	Skipped   int
	Released  int
	Duration  time.Duration
}

// DailyCounts counts mirror rows discovered and completed since a cutoff.
type DailyCounts struct {
	Created   int `db:"created"`
	Processed int `db:"processed"`
}

// Stats is the read-only dashboard snapshot. The daily counters start at
// UTC midnight.
type Stats struct {
	State          SystemState   `json:"state"`
	Counts         []StatusCount `json:"counts"`
	Total          int           `json:"total"`
	InQueue        int           `json:"in_queue"`
	NewToday       int           `json:"new_today"`
	ProcessedToday int           `json:"processed_today"`
	CompletionRate float64       `json:"completion_rate"`
}

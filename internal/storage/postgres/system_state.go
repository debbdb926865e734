package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"catalog_writer/internal/domain"
)

// SystemStateStore manages the single control row (id = 1). The row is
// created on first use if the migration seed is missing.
type SystemStateStore struct {
	db *sqlx.DB
}

func NewSystemStateStore(db *sqlx.DB) *SystemStateStore {
	return &SystemStateStore{db: db}
}

const ensureStateRow = `INSERT INTO system_state (id) VALUES (1) ON CONFLICT (id) DO NOTHING`

func (s *SystemStateStore) ensure(ctx context.Context, exec sqlx.ExtContext) error {
	if _, err := exec.ExecContext(ctx, ensureStateRow); err != nil {
		return fmt.Errorf("ensure system state: %w", err)
	}
	return nil
}

func (s *SystemStateStore) Get(ctx context.Context) (*domain.SystemState, error) {
	exec := GetExecutor(ctx, s.db)
	if err := s.ensure(ctx, exec); err != nil {
		return nil, err
	}

	query := `
		SELECT is_paused, auto_pause_triggered, last_scan_at, last_scan_products,
			last_scan_collections, last_scan_new, updated_at
		FROM system_state
		WHERE id = 1`

	var state domain.SystemState
	if err := sqlx.GetContext(ctx, exec, &state, query); err != nil {
		return nil, fmt.Errorf("get system state: %w", err)
	}
	return &state, nil
}

// SetPaused pauses or unpauses the pipeline. Unpausing also clears the
// auto-pause flag left by the circuit breaker.
func (s *SystemStateStore) SetPaused(ctx context.Context, paused bool) error {
	exec := GetExecutor(ctx, s.db)
	if err := s.ensure(ctx, exec); err != nil {
		return err
	}

	query := `
		UPDATE system_state
		SET is_paused = $1,
			auto_pause_triggered = CASE WHEN $1 THEN auto_pause_triggered ELSE FALSE END,
			updated_at = NOW()
		WHERE id = 1`

	if _, err := exec.ExecContext(ctx, query, paused); err != nil {
		return fmt.Errorf("set paused=%t: %w", paused, err)
	}
	return nil
}

// TripBreaker pauses the pipeline and flags the pause as automatic.
func (s *SystemStateStore) TripBreaker(ctx context.Context) error {
	exec := GetExecutor(ctx, s.db)
	if err := s.ensure(ctx, exec); err != nil {
		return err
	}

	query := `
		UPDATE system_state
		SET is_paused = TRUE, auto_pause_triggered = TRUE, updated_at = NOW()
		WHERE id = 1`

	if _, err := exec.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("trip breaker: %w", err)
	}
	return nil
}

func (s *SystemStateStore) RecordScan(ctx context.Context, rec domain.ScanRecord) error {
	exec := GetExecutor(ctx, s.db)
	if err := s.ensure(ctx, exec); err != nil {
		return err
	}

	query := `
		UPDATE system_state
		SET last_scan_at = $1,
			last_scan_products = $2,
			last_scan_collections = $3,
			last_scan_new = $4,
			updated_at = NOW()
		WHERE id = 1`

	_, err := exec.ExecContext(ctx, query,
		rec.ScannedAt,
		rec.Found[domain.KindProduct],
		rec.Found[domain.KindCollection],
		rec.NewCount,
	)
	if err != nil {
		return fmt.Errorf("record scan: %w", err)
	}
	return nil
}

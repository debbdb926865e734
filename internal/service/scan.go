package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog_writer/internal/domain"
	"catalog_writer/internal/metrics"
)

// Scan discovers new catalog items and inserts them as pending. It refuses
// to run while the pipeline is paused and trips the auto-pause breaker when a
// single scan finds more than AutoPauseThreshold new items.
func (s *Service) Scan(ctx context.Context) (*domain.ScanStats, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	stats, err := s.scan(ctx)
	if err != nil {
		status := "error"
		if errors.Is(err, domain.ErrPaused) {
			status = "paused"
		}
		metrics.RecordScan(status, nil, false)
		return nil, err
	}

	if s.cfg.AutoProcessAfterScan && !stats.BreakerTripped {
		batch, err := s.processBatch(ctx)
		if err != nil {
			return stats, fmt.Errorf("process after scan: %w", err)
		}
		stats.Batch = batch
	}

	return stats, nil
}

func (s *Service) scan(ctx context.Context) (*domain.ScanStats, error) {
	startTime := time.Now()

	state, err := s.state.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get system state: %w", err)
	}
	if state.IsPaused {
		return nil, domain.ErrPaused
	}

	s.logger.Info("starting scan", "kinds", s.kinds)

	stats := &domain.ScanStats{
		Found: make(map[domain.Kind]int, len(s.kinds)),
		New:   make(map[domain.Kind]int, len(s.kinds)),
	}

	listed := make(map[domain.Kind][]domain.ListedItem, len(s.kinds))
	for _, kind := range s.kinds {
		items, err := s.catalog.ListAll(ctx, kind)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("list %s items: %w", kind, err)
			}
			stats.ListErrors++
			s.logger.Error("listing failed, using partial list",
				"kind", kind,
				"fetched", len(items),
				"error", err,
			)
		}
		listed[kind] = dedupe(items)
		stats.Found[kind] = len(listed[kind])
	}

	// Inserts, the scan record and the breaker commit or roll back together.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, kind := range s.kinds {
			inserted, err := s.insertNew(txCtx, kind, listed[kind])
			if err != nil {
				return fmt.Errorf("insert new %s items: %w", kind, err)
			}
			stats.New[kind] = inserted
			stats.NewCount += inserted

			s.logger.Debug("kind scanned", "kind", kind, "found", stats.Found[kind], "new", inserted)
		}

		stats.BreakerTripped = s.cfg.AutoPauseThreshold > 0 && stats.NewCount > s.cfg.AutoPauseThreshold

		if err := s.state.RecordScan(txCtx, domain.ScanRecord{
			ScannedAt: startTime.UTC(),
			Found:     stats.Found,
			NewCount:  stats.NewCount,
		}); err != nil {
			return fmt.Errorf("record scan: %w", err)
		}
		if stats.BreakerTripped {
			if err := s.state.TripBreaker(txCtx); err != nil {
				return fmt.Errorf("trip breaker: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(startTime)

	newByKind := make(map[string]int, len(stats.New))
	for k, n := range stats.New {
		newByKind[string(k)] = n
	}
	metrics.RecordScan("ok", newByKind, stats.BreakerTripped)

	if stats.BreakerTripped {
		s.logger.Warn("auto-pause triggered, too many new items in one scan",
			"new", stats.NewCount,
			"threshold", s.cfg.AutoPauseThreshold,
		)
	}

	s.logger.Info("scan completed",
		"products", stats.Found[domain.KindProduct],
		"collections", stats.Found[domain.KindCollection],
		"new", stats.NewCount,
		"list_errors", stats.ListErrors,
		"breaker_tripped", stats.BreakerTripped,
		"duration", stats.Duration,
	)

	return stats, nil
}

// dedupe drops repeated and empty external ids, keeping the first occurrence.
func dedupe(items []domain.ListedItem) []domain.ListedItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]domain.ListedItem, 0, len(items))
	for _, it := range items {
		if it.ExternalID == "" {
			continue
		}
		if _, dup := seen[it.ExternalID]; dup {
			continue
		}
		seen[it.ExternalID] = struct{}{}
		unique = append(unique, it)
	}
	return unique
}

func (s *Service) insertNew(ctx context.Context, kind domain.Kind, items []domain.ListedItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ExternalID
	}

	existing, err := s.items.GetExistingExternalIDs(ctx, kind, ids)
	if err != nil {
		return 0, err
	}

	var missing []domain.ListedItem
	for _, it := range items {
		if _, ok := existing[it.ExternalID]; !ok {
			missing = append(missing, it)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	return s.items.InsertPending(ctx, kind, missing)
}

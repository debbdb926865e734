package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"catalog_writer/internal/config"
	"catalog_writer/internal/domain"
)

const (
	// RequeuePriority puts explicitly requeued items ahead of discovered ones.
	RequeuePriority = 100

	defaultListLimit = 50
	maxListLimit     = 500
	historyLimit     = 50
)

// Deps are the collaborators of the pipeline. Publisher may be nil.
type Deps struct {
	Catalog   Catalog
	Generator Generator
	Items     ItemStore
	Contents  ContentStore
	State     SystemStateStore
	TxManager TransactionManager
	Publisher Publisher
	Locker    Locker
}

// Service runs scans and batches against the catalog mirror.
type Service struct {
	catalog   Catalog
	generator Generator
	items     ItemStore
	contents  ContentStore
	state     SystemStateStore
	txManager TransactionManager
	publisher Publisher
	locker    Locker
	kinds     []domain.Kind
	cfg       config.PipelineConfig
	logger    *slog.Logger
	now       func() time.Time
}

func New(deps Deps, cfg config.PipelineConfig, logger *slog.Logger) *Service {
	kinds := make([]domain.Kind, 0, len(cfg.Kinds))
	for _, k := range cfg.Kinds {
		if kind, ok := domain.ParseKind(k); ok {
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		kinds = domain.Kinds()
	}

	return &Service{
		catalog:   deps.Catalog,
		generator: deps.Generator,
		items:     deps.Items,
		contents:  deps.Contents,
		state:     deps.State,
		txManager: deps.TxManager,
		publisher: deps.Publisher,
		locker:    deps.Locker,
		kinds:     kinds,
		cfg:       cfg,
		logger:    logger.With("component", "pipeline"),
		now:       time.Now,
	}
}

// lock acquires the scan-or-process lock, waiting at most LockWait.
func (s *Service) lock(ctx context.Context) (func(), error) {
	lockCtx := ctx
	if s.cfg.LockWait > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.cfg.LockWait)
		defer cancel()
	}
	return s.locker.Lock(lockCtx)
}

func (s *Service) Pause(ctx context.Context) error {
	if err := s.state.SetPaused(ctx, true); err != nil {
		return err
	}
	s.logger.Info("pipeline paused")
	return nil
}

// Unpause resumes automatic work and clears the auto-pause flag.
func (s *Service) Unpause(ctx context.Context) error {
	if err := s.state.SetPaused(ctx, false); err != nil {
		return err
	}
	s.logger.Info("pipeline unpaused")
	return nil
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	state, err := s.state.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get system state: %w", err)
	}

	counts, err := s.items.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	if counts == nil {
		counts = []domain.StatusCount{}
	}

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daily, err := s.items.CountSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("count items since midnight: %w", err)
	}

	stats := &domain.Stats{
		State:          *state,
		Counts:         counts,
		NewToday:       daily.Created,
		ProcessedToday: daily.Processed,
	}
	completed := 0
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case domain.StatusPending:
			stats.InQueue += c.Count
		case domain.StatusCompleted:
			completed += c.Count
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = math.Round(float64(completed)/float64(stats.Total)*1000) / 10
	}
	return stats, nil
}

func (s *Service) Items(ctx context.Context, filter domain.ItemFilter) ([]domain.CatalogItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	filter.Limit = min(filter.Limit, maxListLimit)
	filter.Offset = max(filter.Offset, 0)

	return s.items.List(ctx, filter)
}

// Requeue makes an item eligible again with a raised priority. This is the
// only way a completed or abandoned item is processed again.
func (s *Service) Requeue(ctx context.Context, kind domain.Kind, externalID string) error {
	if err := s.items.Requeue(ctx, kind, externalID, RequeuePriority); err != nil {
		return err
	}
	s.logger.Info("item requeued", "kind", kind, "external_id", externalID)
	return nil
}

// History returns the audit rows of one item, newest first.
func (s *Service) History(ctx context.Context, kind domain.Kind, externalID string) ([]domain.GeneratedContent, error) {
	if _, err := s.items.Get(ctx, kind, externalID); err != nil {
		return nil, err
	}
	return s.contents.ListByItem(ctx, kind, externalID, historyLimit)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

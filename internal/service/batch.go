package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"catalog_writer/internal/domain"
	"catalog_writer/internal/metrics"
	"catalog_writer/internal/sanitize"
)

const maxErrorLength = 1000

var (
	errEmptyTitle       = errors.New("generated title is empty after sanitization")
	errEmptyDescription = errors.New("generated description is empty after sanitization")
)

// ProcessBatch rewrites a bounded slice of eligible items, one at a time.
// Item failures are recorded on the item and never abort the batch.
func (s *Service) ProcessBatch(ctx context.Context) (*domain.BatchStats, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.processBatch(ctx)
}

func (s *Service) processBatch(ctx context.Context) (*domain.BatchStats, error) {
	startTime := time.Now()
	stats := &domain.BatchStats{RunID: uuid.NewString()}
	logger := s.logger.With("run_id", stats.RunID)

	state, err := s.state.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get system state: %w", err)
	}
	if state.IsPaused {
		return nil, domain.ErrPaused
	}

	if s.cfg.StaleProcessingAfter > 0 {
		released, err := s.items.ReleaseStale(ctx, s.cfg.StaleProcessingAfter, s.cfg.MaxAttempts)
		if err != nil {
			return nil, fmt.Errorf("release stale items: %w", err)
		}
		stats.Released = released
		if released > 0 {
			logger.Warn("released items stuck in processing", "count", released)
		}
	}

	items, err := s.items.ListEligible(ctx, s.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("list eligible items: %w", err)
	}
	stats.Selected = len(items)

	logger.Info("starting batch", "selected", stats.Selected, "released", stats.Released)

	for i := range items {
		if ctx.Err() != nil {
			logger.Warn("batch interrupted", "remaining", len(items)-i, "error", ctx.Err())
			break
		}

		status := s.processItem(ctx, logger, &items[i])
		switch status {
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusFailed:
			stats.Failed++
		case domain.StatusAbandoned:
			stats.Abandoned++
		default:
			stats.Skipped++
			continue
		}
		stats.Processed++
		metrics.RecordItem(string(items[i].Kind), string(status))

		if i < len(items)-1 {
			_ = sleepCtx(ctx, s.cfg.ItemDelay)
		}
	}

	stats.Duration = time.Since(startTime)
	metrics.RecordBatch(stats.Duration.Seconds())

	logger.Info("batch completed",
		"processed", stats.Processed,
		"completed", stats.Completed,
		"failed", stats.Failed,
		"abandoned", stats.Abandoned,
		"skipped", stats.Skipped,
		"duration", stats.Duration,
	)

	return stats, nil
}

// processItem runs one item through claim, generation and write-back and
// returns its resulting status. An empty status means the item was skipped.
func (s *Service) processItem(ctx context.Context, logger *slog.Logger, item *domain.CatalogItem) domain.ItemStatus {
	logger = logger.With("kind", item.Kind, "external_id", item.ExternalID)

	claimed, err := s.items.Claim(ctx, item.ID)
	if err != nil {
		logger.Error("claim item failed", "error", err)
		return ""
	}
	if !claimed {
		logger.Info("item no longer eligible, skipping")
		return ""
	}

	content, err := s.rewrite(ctx, item)
	if err != nil {
		return s.fail(ctx, logger, item, err)
	}

	// The write-back already happened; record it even if ctx is cancelled now.
	persistCtx := context.WithoutCancel(ctx)
	err = s.txManager.WithTransaction(persistCtx, func(txCtx context.Context) error {
		if err := s.contents.Append(txCtx, content); err != nil {
			return fmt.Errorf("append content: %w", err)
		}
		if err := s.items.MarkCompleted(txCtx, item.ID, content.Title); err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("record completion failed", "error", err)
		return s.fail(ctx, logger, item, err)
	}

	metrics.RecordGeneration(string(content.Mode), string(content.Origin))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, content); err != nil {
			logger.Warn("publish content event failed", "error", err)
		}
	}

	logger.Info("item completed",
		"mode", content.Mode,
		"origin", content.Origin,
		"title", content.Title,
	)
	return domain.StatusCompleted
}

// rewrite fetches the item, generates new content and writes it back.
func (s *Service) rewrite(ctx context.Context, item *domain.CatalogItem) (*domain.GeneratedContent, error) {
	detail, err := s.catalog.GetDetail(ctx, item.Kind, item.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("get detail: %w", err)
	}

	in := domain.GenerationInput{
		Title:       sanitize.CleanTitle(detail.Title),
		Description: sanitize.StripHTML(detail.BodyHTML),
		Vendor:      detail.Vendor,
		ProductType: detail.ProductType,
	}

	mode := domain.ModeMeta
	if sanitize.WordCount(in.Description) < s.cfg.WordThreshold {
		mode = domain.ModeFull
	}

	var result *domain.GenerationResult
	if mode == domain.ModeFull {
		result, err = s.generator.GenerateFull(ctx, in)
	} else {
		result, err = s.generator.GenerateMetaOnly(ctx, in)
	}
	if err != nil {
		return nil, fmt.Errorf("generate %s content: %w", mode, err)
	}

	title := sanitize.OutputTitle(result.Title)
	if title == "" {
		title = sanitize.OutputTitle(in.Title)
	}
	if title == "" {
		return nil, errEmptyTitle
	}

	content := &domain.GeneratedContent{
		Kind:       item.Kind,
		ExternalID: item.ExternalID,
		Mode:       mode,
		Origin:     result.Origin,
		Title:      title,
		Keywords:   result.Keywords,
	}
	if len(content.Keywords) > 0 {
		content.FocusKeyword = content.Keywords[0]
	}
	fields := domain.UpdateFields{Title: &title}

	if mode == domain.ModeFull {
		body := sanitize.DescriptionHTML(result.DescriptionHTML)
		if body == "" {
			return nil, errEmptyDescription
		}
		fields.BodyHTML = &body
		content.DescriptionHTML = &body
	} else {
		if result.MetaTitle != "" {
			fields.MetaTitle = &result.MetaTitle
			content.MetaTitle = &result.MetaTitle
		}
		if result.MetaDescription != "" {
			fields.MetaDescription = &result.MetaDescription
			content.MetaDescription = &result.MetaDescription
		}
	}

	if err := s.catalog.Update(ctx, item.Kind, item.ExternalID, fields); err != nil {
		return nil, fmt.Errorf("write back: %w", err)
	}

	return content, nil
}

func (s *Service) fail(ctx context.Context, logger *slog.Logger, item *domain.CatalogItem, cause error) domain.ItemStatus {
	reason := sanitize.Truncate(cause.Error(), maxErrorLength)

	status, err := s.items.MarkFailed(context.WithoutCancel(ctx), item.ID, reason, s.cfg.MaxAttempts)
	if err != nil {
		logger.Error("mark item failed", "cause", cause, "error", err)
		return domain.StatusFailed
	}

	if status == domain.StatusAbandoned {
		logger.Error("item abandoned after repeated failures",
			"attempts", item.Attempts+1,
			"error", cause,
		)
		return status
	}

	logger.Warn("item failed",
		"attempts", item.Attempts+1,
		"error", cause,
	)
	return status
}

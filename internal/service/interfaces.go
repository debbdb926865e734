package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"catalog_writer/internal/domain"
)

type Catalog interface {
	ListAll(ctx context.Context, kind domain.Kind) ([]domain.ListedItem, error)
	GetDetail(ctx context.Context, kind domain.Kind, externalID string) (*domain.ItemDetail, error)
	Update(ctx context.Context, kind domain.Kind, externalID string, fields domain.UpdateFields) error
}

type Generator interface {
	GenerateFull(ctx context.Context, in domain.GenerationInput) (*domain.GenerationResult, error)
	GenerateMetaOnly(ctx context.Context, in domain.GenerationInput) (*domain.GenerationResult, error)
}

type ItemStore interface {
	GetExistingExternalIDs(ctx context.Context, kind domain.Kind, ids []string) (map[string]struct{}, error)
	InsertPending(ctx context.Context, kind domain.Kind, items []domain.ListedItem) (int, error)
	ListEligible(ctx context.Context, limit int) ([]domain.CatalogItem, error)
	Claim(ctx context.Context, id int64) (bool, error)
	MarkCompleted(ctx context.Context, id int64, title string) error
	MarkFailed(ctx context.Context, id int64, reason string, maxAttempts int) (domain.ItemStatus, error)
	ReleaseStale(ctx context.Context, olderThan time.Duration, maxAttempts int) (int, error)
	Requeue(ctx context.Context, kind domain.Kind, externalID string, priority int) error
	Get(ctx context.Context, kind domain.Kind, externalID string) (*domain.CatalogItem, error)
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)
	CountSince(ctx context.Context, since time.Time) (*domain.DailyCounts, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.CatalogItem, error)
}

type ContentStore interface {
	Append(ctx context.Context, content *domain.GeneratedContent) error
	ListByItem(ctx context.Context, kind domain.Kind, externalID string, limit int) ([]domain.GeneratedContent, error)
}

type SystemStateStore interface {
	Get(ctx context.Context) (*domain.SystemState, error)
	SetPaused(ctx context.Context, paused bool) error
	TripBreaker(ctx context.Context) error
	RecordScan(ctx context.Context, rec domain.ScanRecord) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, content *domain.GeneratedContent) error
	Close() error
}

// Locker serializes scans and batches. Lock blocks until the lock is held or
// ctx is done, in which case it returns an error wrapping domain.ErrBusy.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

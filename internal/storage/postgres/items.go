package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"catalog_writer/internal/domain"
)

// insertChunk keeps multi-row inserts well under the 65535 bind parameter limit.
const insertChunk = 500

const itemColumns = `id, kind, external_id, title, handle, vendor, product_type, status,
	seo_written, attempts, priority, last_error, created_at, updated_at, processed_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ItemStore struct {
	db *sqlx.DB
}

func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{db: db}
}

// GetExistingExternalIDs returns the subset of ids already mirrored for kind.
func (s *ItemStore) GetExistingExternalIDs(ctx context.Context, kind domain.Kind, ids []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT external_id FROM catalog_items WHERE kind = $1 AND external_id = ANY($2)`

	var existing []string
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &existing, query, kind, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("select existing %s ids: %w", kind, err)
	}

	for _, id := range existing {
		result[id] = struct{}{}
	}
	return result, nil
}

// InsertPending inserts items as pending and returns how many rows were
// actually created. Items already present are left untouched.
func (s *ItemStore) InsertPending(ctx context.Context, kind domain.Kind, items []domain.ListedItem) (int, error) {
	exec := GetExecutor(ctx, s.db)
	inserted := 0

	for start := 0; start < len(items); start += insertChunk {
		end := min(start+insertChunk, len(items))

		q := psql.Insert("catalog_items").
			Columns("kind", "external_id", "title", "handle", "vendor", "product_type").
			Suffix("ON CONFLICT (kind, external_id) DO NOTHING")
		for _, it := range items[start:end] {
			q = q.Values(kind, it.ExternalID, it.Title, it.Handle, it.Vendor, it.ProductType)
		}

		query, args, err := q.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("build insert: %w", err)
		}

		res, err := exec.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("insert pending %s items: %w", kind, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}

	return inserted, nil
}

// ListEligible returns up to limit pending or failed items, highest priority
// first, then oldest first.
func (s *ItemStore) ListEligible(ctx context.Context, limit int) ([]domain.CatalogItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM catalog_items
		WHERE status IN ('pending', 'failed')
		ORDER BY priority DESC, created_at ASC, id ASC
		LIMIT $1`

	var items []domain.CatalogItem
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &items, query, limit); err != nil {
		return nil, fmt.Errorf("list eligible items: %w", err)
	}
	return items, nil
}

// Claim moves an eligible item to processing. It reports false when the item
// is no longer eligible, e.g. another worker claimed it first.
func (s *ItemStore) Claim(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE catalog_items
		SET status = 'processing', updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'failed')`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("claim item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *ItemStore) MarkCompleted(ctx context.Context, id int64, title string) error {
	query := `
		UPDATE catalog_items
		SET status = 'completed',
			title = $2,
			seo_written = TRUE,
			last_error = NULL,
			processed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, title)
	if err != nil {
		return fmt.Errorf("mark item %d completed: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MarkFailed records a failed attempt on a processing item. Once attempts
// reach maxAttempts the item is abandoned; maxAttempts <= 0 never abandons.
func (s *ItemStore) MarkFailed(ctx context.Context, id int64, reason string, maxAttempts int) (domain.ItemStatus, error) {
	query := `
		UPDATE catalog_items
		SET attempts = attempts + 1,
			status = CASE WHEN $3 > 0 AND attempts + 1 >= $3 THEN 'abandoned' ELSE 'failed' END,
			last_error = $2,
			updated_at = NOW()
		WHERE id = $1 AND status = 'processing'
		RETURNING status`

	var status domain.ItemStatus
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &status, query, id, reason, maxAttempts)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("processing item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("mark item %d failed: %w", id, err)
	}
	return status, nil
}

// ReleaseStale fails processing items untouched for longer than olderThan,
// counting it as an attempt. It returns the number of rows released.
func (s *ItemStore) ReleaseStale(ctx context.Context, olderThan time.Duration, maxAttempts int) (int, error) {
	query := `
		UPDATE catalog_items
		SET attempts = attempts + 1,
			status = CASE WHEN $2 > 0 AND attempts + 1 >= $2 THEN 'abandoned' ELSE 'failed' END,
			last_error = 'processing timed out',
			updated_at = NOW()
		WHERE status = 'processing'
			AND updated_at < NOW() - ($1 * INTERVAL '1 second')`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, olderThan.Seconds(), maxAttempts)
	if err != nil {
		return 0, fmt.Errorf("release stale items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Requeue makes an item eligible again regardless of its status and resets
// its attempt counter.
func (s *ItemStore) Requeue(ctx context.Context, kind domain.Kind, externalID string, priority int) error {
	query := `
		UPDATE catalog_items
		SET status = 'pending',
			attempts = 0,
			priority = GREATEST(priority, $3),
			last_error = NULL,
			updated_at = NOW()
		WHERE kind = $1 AND external_id = $2`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, kind, externalID, priority)
	if err != nil {
		return fmt.Errorf("requeue %s %s: %w", kind, externalID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %s: %w", kind, externalID, domain.ErrNotFound)
	}
	return nil
}

func (s *ItemStore) Get(ctx context.Context, kind domain.Kind, externalID string) (*domain.CatalogItem, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items WHERE kind = $1 AND external_id = $2`

	var item domain.CatalogItem
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &item, query, kind, externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, externalID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", kind, externalID, err)
	}
	return &item, nil
}

func (s *ItemStore) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	query := `
		SELECT kind, status, COUNT(*) AS count
		FROM catalog_items
		GROUP BY kind, status
		ORDER BY kind, status`

	var counts []domain.StatusCount
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &counts, query); err != nil {
		return nil, fmt.Errorf("count items by status: %w", err)
	}
	return counts, nil
}

// CountSince counts rows created and rows completed at or after since.
func (s *ItemStore) CountSince(ctx context.Context, since time.Time) (*domain.DailyCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE created_at >= $1) AS created,
			COUNT(*) FILTER (WHERE processed_at >= $1) AS processed
		FROM catalog_items`

	var counts domain.DailyCounts
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &counts, query, since); err != nil {
		return nil, fmt.Errorf("count items since %s: %w", since.Format(time.RFC3339), err)
	}
	return &counts, nil
}

// List returns mirror rows matching the filter, most recently updated first.
func (s *ItemStore) List(ctx context.Context, filter domain.ItemFilter) ([]domain.CatalogItem, error) {
	q := psql.Select(itemColumns).
		From("catalog_items").
		OrderBy("updated_at DESC", "id DESC")

	if filter.Kind != "" {
		q = q.Where(sq.Eq{"kind": filter.Kind})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	items := make([]domain.CatalogItem, 0)
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &items, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

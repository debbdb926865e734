package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"catalog_writer/internal/domain"
)

// ContentStore is the append-only audit log of confirmed write-backs.
type ContentStore struct {
	db *sqlx.DB
}

type contentRow struct {
	domain.GeneratedContent
	KeywordList pq.StringArray `db:"keywords"`
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) Append(ctx context.Context, c *domain.GeneratedContent) error {
	query := `
		INSERT INTO generated_content (
			kind, external_id, mode, origin, title, meta_title, meta_description, description_html,
			keywords, focus_keyword
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING id, generated_at`

	// A nil slice encodes as NULL.
	keywords := c.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		c.Kind,
		c.ExternalID,
		c.Mode,
		c.Origin,
		c.Title,
		c.MetaTitle,
		c.MetaDescription,
		c.DescriptionHTML,
		pq.Array(keywords),
		c.FocusKeyword,
	).Scan(&c.ID, &c.GeneratedAt)
	if err != nil {
		return fmt.Errorf("append content for %s %s: %w", c.Kind, c.ExternalID, err)
	}
	return nil
}

// ListByItem returns the newest audit rows of one item first.
func (s *ContentStore) ListByItem(ctx context.Context, kind domain.Kind, externalID string, limit int) ([]domain.GeneratedContent, error) {
	query := `
		SELECT id, kind, external_id, mode, origin, title, meta_title, meta_description,
			description_html, keywords, focus_keyword, generated_at
		FROM generated_content
		WHERE kind = $1 AND external_id = $2
		ORDER BY generated_at DESC, id DESC
		LIMIT $3`

	var rows []contentRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, kind, externalID, limit); err != nil {
		return nil, fmt.Errorf("list content for %s %s: %w", kind, externalID, err)
	}

	history := make([]domain.GeneratedContent, 0, len(rows))
	for _, r := range rows {
		c := r.GeneratedContent
		c.Keywords = []string(r.KeywordList)
		if c.Keywords == nil {
			c.Keywords = []string{}
		}
		history = append(history, c)
	}
	return history, nil
}

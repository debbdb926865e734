package domain

import "time"

type GenerationMode string

const (
	// ModeFull rewrites the title and the whole description.
	ModeFull GenerationMode = "full"
	// ModeMeta keeps the description and only rewrites title and search metadata.
	ModeMeta GenerationMode = "meta"
)

// ContentOrigin tags where a generation result came from.
type ContentOrigin string

const (
	OriginModel      ContentOrigin = "model"
	OriginModelRetry ContentOrigin = "model_retry"
	OriginFallback   ContentOrigin = "fallback"
)

type GenerationInput struct {
	Title       string
	Description string
	Vendor      string
	ProductType string
	// Keywords steer the copy. The generator fills them when empty.
	Keywords    []string
}

type GenerationResult struct {
	Mode            GenerationMode
	Origin          ContentOrigin
	Title           string
	DescriptionHTML string
	MetaTitle       string
	MetaDescription string
	Keywords        []string
}

// GeneratedContent is an append-only audit record of a confirmed write-back.
type GeneratedContent struct {
	ID              int64          `db:"id" json:"id"`
	Kind            Kind           `db:"kind" json:"kind"`
	ExternalID      string         `db:"external_id" json:"external_id"`
	Mode            GenerationMode `db:"mode" json:"mode"`
	Origin          ContentOrigin  `db:"origin" json:"origin"`
	Title           string         `db:"title" json:"title"`
	MetaTitle       *string        `db:"meta_title" json:"meta_title,omitempty"`
	MetaDescription *string        `db:"meta_description" json:"meta_description,omitempty"`
	DescriptionHTML *string        `db:"description_html" json:"description_html,omitempty"`
	Keywords        []string       `db:"-" json:"keywords"`
	FocusKeyword    string         `db:"focus_keyword" json:"focus_keyword,omitempty"`
	GeneratedAt     time.Time      `db:"generated_at" json:"generated_at"`
}

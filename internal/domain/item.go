package domain

import "time"

// Kind identifies which catalog endpoint an item comes from.
type Kind string

const (
	KindProduct    Kind = "product"
	KindCollection Kind = "collection"
)

// Kinds returns every kind the mirror tracks.
func Kinds() []Kind {
	return []Kind{KindProduct, KindCollection}
}

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindProduct, KindCollection:
		return Kind(s), true
	}
	return "", false
}

type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusProcessing ItemStatus = "processing"
	StatusCompleted  ItemStatus = "completed"
	StatusFailed     ItemStatus = "failed"
	StatusAbandoned  ItemStatus = "abandoned"
)

// Eligible reports whether the batch processor may pick the item up.
func (s ItemStatus) Eligible() bool {
	return s == StatusPending || s == StatusFailed
}

// Terminal reports whether the item is excluded from automatic pickup for good.
func (s ItemStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

func ParseStatus(s string) (ItemStatus, bool) {
	switch ItemStatus(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusAbandoned:
		return ItemStatus(s), true
	}
	return "", false
}

// CatalogItem is one row of the catalog mirror.
type CatalogItem struct {
	ID          int64      `db:"id" json:"id"`
	Kind        Kind       `db:"kind" json:"kind"`
	ExternalID  string     `db:"external_id" json:"external_id"`
	Title       string     `db:"title" json:"title"`
	Handle      string     `db:"handle" json:"handle"`
	Vendor      string     `db:"vendor" json:"vendor"`
	ProductType string     `db:"product_type" json:"product_type"`
	Status      ItemStatus `db:"status" json:"status"`
	SEOWritten  bool       `db:"seo_written" json:"seo_written"`
	Attempts    int        `db:"attempts" json:"attempts"`
	Priority    int        `db:"priority" json:"priority"`
	LastError   *string    `db:"last_error" json:"last_error,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	ProcessedAt *time.Time `db:"processed_at" json:"processed_at,omitempty"`
}

// ListedItem is what a catalog list endpoint returns for one item.
type ListedItem struct {
	ExternalID  string
	Title       string
	Handle      string
	Vendor      string
	ProductType string
}

// ItemDetail is the single-item projection used before generation.
type ItemDetail struct {
	ExternalID  string
	Title       string
	Handle      string
	Vendor      string
	ProductType string
	BodyHTML    string
}

// UpdateFields is a partial update. Nil fields are left untouched upstream.
type UpdateFields struct {
	Title           *string
	BodyHTML        *string
	MetaTitle       *string
	MetaDescription *string
}

func (u UpdateFields) Empty() bool {
	return u.Title == nil && u.BodyHTML == nil && u.MetaTitle == nil && u.MetaDescription == nil
}

type ItemFilter struct {
	Kind   Kind
	Status ItemStatus
	Limit  int
	Offset int
}

type StatusCount struct {
	Kind   Kind       `db:"kind" json:"kind"`
	Status ItemStatus `db:"status" json:"status"`
	Count  int        `db:"count" json:"count"`
}

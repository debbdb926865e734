package shopify

import (
	"strconv"

	"catalog_writer/internal/domain"
)

// apiItem is the subset of a Shopify product or custom collection we read.
type apiItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	BodyHTML    string `json:"body_html"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"product_type"`
}

// updatePayload carries only the fields being changed; omitted keys are left
// untouched by Shopify.
type updatePayload struct {
	ID              int64   `json:"id"`
	Title           *string `json:"title,omitempty"`
	BodyHTML        *string `json:"body_html,omitempty"`
	MetaTitle       *string `json:"metafields_global_title_tag,omitempty"`
	MetaDescription *string `json:"metafields_global_description_tag,omitempty"`
}

type resource struct {
	plural   string
	singular string
}

var resources = map[domain.Kind]resource{
	domain.KindProduct:    {plural: "products", singular: "product"},
	domain.KindCollection: {plural: "custom_collections", singular: "custom_collection"},
}

func (a apiItem) listed() domain.ListedItem {
	return domain.ListedItem{
		ExternalID:  strconv.FormatInt(a.ID, 10),
		Title:       a.Title,
		Handle:      a.Handle,
		Vendor:      a.Vendor,
		ProductType: a.ProductType,
	}
}

func (a apiItem) detail() *domain.ItemDetail {
	return &domain.ItemDetail{
		ExternalID:  strconv.FormatInt(a.ID, 10),
		Title:       a.Title,
		Handle:      a.Handle,
		Vendor:      a.Vendor,
		ProductType: a.ProductType,
		BodyHTML:    a.BodyHTML,
	}
}

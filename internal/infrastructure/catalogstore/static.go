package catalogstore

import (
	"context"

	"github.com/shopspring/decimal"

	"assist-server/services/assistant-api/internal/domain/catalog"
)

// StaticCatalog serves a fixed set of entries from memory. It is the
// default source, used for local development and as a dependable floor for
// the suggestion fallback when no external catalog is configured.
type StaticCatalog struct {
	entries []catalog.Entry
}

// NewStaticCatalog creates a catalog over the given entries. When entries
// is nil the built-in fixture set is used.
func NewStaticCatalog(entries []catalog.Entry) *StaticCatalog {
	if entries == nil {
		entries = defaultEntries()
	}
	return &StaticCatalog{entries: entries}
}

// ListActive returns one page of active entries. Pagination is one-based;
// a page past the end yields an empty item list with correct metadata.
func (c *StaticCatalog) ListActive(ctx context.Context, page, limit int) (catalog.Page, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Page{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	active := make([]catalog.Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Active {
			active = append(active, entry)
		}
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(active) {
		start = len(active)
	}
	if end > len(active) {
		end = len(active)
	}

	return catalog.Page{
		Items: append([]catalog.Entry(nil), active[start:end]...),
		Meta: catalog.PageMeta{
			Page:  page,
			Limit: limit,
			Total: int64(len(active)),
		},
	}, nil
}

func defaultEntries() []catalog.Entry {
	return []catalog.Entry{
		{
			Slug: "visa-support-consultation",
			Translations: map[string]catalog.Translation{
				"en": {Name: "Visa Support Consultation", Summary: "One-on-one guidance through visa applications and renewals."},
				"fr": {Name: "Consultation d'assistance visa", Summary: "Accompagnement personnalisé pour vos demandes et renouvellements de visa."},
				"ar": {Name: "استشارة دعم التأشيرات", Summary: "إرشاد شخصي خلال طلبات التأشيرة وتجديدها."},
			},
			Price:    decimal.NewFromInt(150),
			Currency: "AED",
			Active:   true,
		},
		{
			Slug: "document-attestation",
			Translations: map[string]catalog.Translation{
				"en": {Name: "Document Attestation", Summary: "Official attestation for certificates and legal documents."},
				"fr": {Name: "Attestation de documents", Summary: "Attestation officielle de certificats et documents légaux."},
				"ar": {Name: "تصديق المستندات", Summary: "تصديق رسمي للشهادات والمستندات القانونية."},
			},
			Price:    decimal.NewFromInt(80),
			Currency: "AED",
			Active:   true,
		},
		{
			Slug: "translation-services",
			Translations: map[string]catalog.Translation{
				"en": {Name: "Certified Translation", Summary: "Certified translation of official documents across supported languages."},
				"fr": {Name: "Traduction certifiée", Summary: "Traduction certifiée de documents officiels dans les langues prises en charge."},
				"ar": {Name: "ترجمة معتمدة", Summary: "ترجمة معتمدة للمستندات الرسمية بين اللغات المدعومة."},
			},
			Price:    decimal.NewFromInt(60),
			Currency: "AED",
			Active:   true,
		},
		{
			Slug: "legacy-notary-service",
			Translations: map[string]catalog.Translation{
				"en": {Name: "Notary Service", Summary: "Retired in-office notary appointments."},
			},
			Price:    decimal.NewFromInt(40),
			Currency: "AED",
			Active:   false,
		},
	}
}

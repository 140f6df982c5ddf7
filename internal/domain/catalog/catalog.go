package catalog

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// Translation is the localized presentation of a catalog entry.
type Translation struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Entry is one offerable service in the catalog.
type Entry struct {
	Slug         string                 `json:"slug"`
	Translations map[string]Translation `json:"translations"`
	Price        decimal.Decimal        `json:"price"`
	Currency     string                 `json:"currency"`
	Active       bool                   `json:"active"`
}

// Localized returns the translation for the requested locale. When the
// locale is missing it falls back to "en", then to any available
// translation in deterministic order.
func (e Entry) Localized(locale string) Translation {
	if tr, ok := e.Translations[locale]; ok {
		return tr
	}
	if tr, ok := e.Translations["en"]; ok {
		return tr
	}
	locales := make([]string, 0, len(e.Translations))
	for l := range e.Translations {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	if len(locales) > 0 {
		return e.Translations[locales[0]]
	}
	return Translation{Name: e.Slug}
}

// PageMeta describes the pagination of a catalog listing.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Page is one page of active catalog entries.
type Page struct {
	Items []Entry  `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// Catalog lists offerable services. It is consulted read-only, and only to
// synthesize suggestion fallbacks; implementations must tolerate empty
// results.
type Catalog interface {
	ListActive(ctx context.Context, page, limit int) (Page, error)
}

package catalogstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"assist-server/services/assistant-api/internal/domain/catalog"
)

func fixtureEntries() []catalog.Entry {
	entries := make([]catalog.Entry, 0, 5)
	for _, slug := range []string{"alpha", "bravo", "charlie", "delta"} {
		entries = append(entries, catalog.Entry{
			Slug: slug,
			Translations: map[string]catalog.Translation{
				"en": {Name: slug},
			},
			Price:    decimal.NewFromInt(10),
			Currency: "AED",
			Active:   true,
		})
	}
	entries = append(entries, catalog.Entry{
		Slug:   "retired",
		Active: false,
	})
	return entries
}

func TestStaticCatalogListActive(t *testing.T) {
	cat := NewStaticCatalog(fixtureEntries())

	t.Run("inactive entries are excluded", func(t *testing.T) {
		page, err := cat.ListActive(context.Background(), 1, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 4 {
			t.Fatalf("got %d items, want 4", len(page.Items))
		}
		if page.Meta.Total != 4 {
			t.Errorf("total = %d, want 4", page.Meta.Total)
		}
		for _, item := range page.Items {
			if !item.Active {
				t.Errorf("inactive entry %q leaked into the listing", item.Slug)
			}
		}
	})

	t.Run("pagination is one-based", func(t *testing.T) {
		page, err := cat.ListActive(context.Background(), 2, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 2 {
			t.Fatalf("got %d items, want 2", len(page.Items))
		}
		if page.Items[0].Slug != "charlie" {
			t.Errorf("second page starts at %q, want charlie", page.Items[0].Slug)
		}
		if page.Meta.Page != 2 || page.Meta.Limit != 2 {
			t.Errorf("meta = %+v", page.Meta)
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := cat.ListActive(context.Background(), 10, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 0 {
			t.Errorf("got %d items, want none", len(page.Items))
		}
		if page.Meta.Total != 4 {
			t.Errorf("total = %d, want 4", page.Meta.Total)
		}
	})

	t.Run("out of range arguments are clamped", func(t *testing.T) {
		page, err := cat.ListActive(context.Background(), 0, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Meta.Page != 1 || page.Meta.Limit != 1 {
			t.Errorf("meta = %+v, want page 1 limit 1", page.Meta)
		}
	})
}

func TestStaticCatalogDefaultFixture(t *testing.T) {
	cat := NewStaticCatalog(nil)

	page, err := cat.ListActive(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) == 0 {
		t.Fatal("built-in fixture should not be empty")
	}

	found := false
	for _, item := range page.Items {
		if item.Localized("en").Name == "Visa Support Consultation" {
			found = true
		}
	}
	if !found {
		t.Error("built-in fixture should include the visa support consultation")
	}
}

package catalog

import "testing"

func TestLocalized(t *testing.T) {
	entry := Entry{
		Slug: "visa-support-consultation",
		Translations: map[string]Translation{
			"en": {Name: "Visa Support Consultation", Summary: "Guidance through visa applications."},
			"fr": {Name: "Consultation d'assistance visa", Summary: "Accompagnement pour vos demandes de visa."},
		},
	}

	tests := []struct {
		name     string
		locale   string
		wantName string
	}{
		{name: "exact locale match", locale: "fr", wantName: "Consultation d'assistance visa"},
		{name: "missing locale falls back to english", locale: "ar", wantName: "Visa Support Consultation"},
		{name: "english served directly", locale: "en", wantName: "Visa Support Consultation"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := entry.Localized(tc.locale)
			if got.Name != tc.wantName {
				t.Errorf("Localized(%q).Name = %q, want %q", tc.locale, got.Name, tc.wantName)
			}
		})
	}
}

func TestLocalizedWithoutEnglish(t *testing.T) {
	entry := Entry{
		Slug: "attestation",
		Translations: map[string]Translation{
			"fr": {Name: "Attestation"},
			"ar": {Name: "تصديق"},
		},
	}

	// No english translation: the lexicographically first locale wins so the
	// choice is stable across calls.
	got := entry.Localized("de")
	if got.Name != "تصديق" {
		t.Errorf("Localized fallback picked %q, want the ar translation", got.Name)
	}
}

func TestLocalizedWithoutTranslations(t *testing.T) {
	entry := Entry{Slug: "mystery-service"}

	got := entry.Localized("en")
	if got.Name != "mystery-service" {
		t.Errorf("entries without translations fall back to the slug, got %q", got.Name)
	}
}

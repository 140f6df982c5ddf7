package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocaleBundle carries the canned fallback messages for one locale. Every
// fallback served when the model backend is unavailable comes from here.
type LocaleBundle struct {
	Chat               string `yaml:"chat"`
	ServiceSuggestions string `yaml:"service_suggestions"`
	DocumentAssist     string `yaml:"document_assist"`
}

func (b LocaleBundle) complete() bool {
	return b.Chat != "" && b.ServiceSuggestions != "" && b.DocumentAssist != ""
}

// DefaultLocaleBundles returns the built-in fallback messages.
func DefaultLocaleBundles() map[string]LocaleBundle {
	return map[string]LocaleBundle{
		"en": {
			Chat:               "I'm having trouble reaching the assistant right now. Please try again in a few moments.",
			ServiceSuggestions: "The assistant is temporarily unavailable, so here are some of our most requested services.",
			DocumentAssist:     "The assistant is temporarily unavailable. Please review the requirements in your document checklist and try again shortly.",
		},
		"fr": {
			Chat:               "L'assistant est momentanément indisponible. Veuillez réessayer dans quelques instants.",
			ServiceSuggestions: "L'assistant est momentanément indisponible, voici donc quelques-uns de nos services les plus demandés.",
			DocumentAssist:     "L'assistant est momentanément indisponible. Veuillez vérifier la liste des documents requis et réessayer plus tard.",
		},
		"ar": {
			Chat:               "يتعذر الوصول إلى المساعد حاليا. يرجى المحاولة مرة أخرى بعد قليل.",
			ServiceSuggestions: "المساعد غير متاح مؤقتا، إليك بعض خدماتنا الأكثر طلبا.",
			DocumentAssist:     "المساعد غير متاح مؤقتا. يرجى مراجعة قائمة المستندات المطلوبة والمحاولة لاحقا.",
		},
	}
}

// LoadLocaleBundleFile parses a yaml file mapping locale codes to bundles.
// Entries override the built-in defaults per locale.
func LoadLocaleBundleFile(path string) (map[string]LocaleBundle, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read locale bundle file: %w", err)
	}

	var raw map[string]LocaleBundle
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse locale bundle file %s: %w", cleanPath, err)
	}

	bundles := make(map[string]LocaleBundle, len(raw))
	for locale, bundle := range raw {
		bundles[normalizeLocale(locale)] = bundle
	}
	return bundles, nil
}

// resolveLocaleBundles merges file overrides over the defaults and checks
// that fallback messages exist for the default locale. Supported locales
// without a bundle resolve to the default locale's bundle at lookup time.
func resolveLocaleBundles(path string, supported []string, defaultLocale string) (map[string]LocaleBundle, error) {
	bundles := DefaultLocaleBundles()

	if strings.TrimSpace(path) != "" {
		overrides, err := LoadLocaleBundleFile(path)
		if err != nil {
			return nil, err
		}
		for locale, override := range overrides {
			merged := bundles[locale]
			if override.Chat != "" {
				merged.Chat = override.Chat
			}
			if override.ServiceSuggestions != "" {
				merged.ServiceSuggestions = override.ServiceSuggestions
			}
			if override.DocumentAssist != "" {
				merged.DocumentAssist = override.DocumentAssist
			}
			bundles[locale] = merged
		}
	}

	if !bundles[defaultLocale].complete() {
		return nil, fmt.Errorf("no complete fallback bundle for default locale %q", defaultLocale)
	}

	return bundles, nil
}

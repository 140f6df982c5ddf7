package assistant

import "strings"

// ResolveLocale negotiates the effective locale for a request: the
// requested locale wins over the caller's preferred locale, which wins over
// the configured fallback. A candidate outside the supported set is
// silently substituted with the fallback.
func ResolveLocale(requested, callerPreferred string, supported []string, fallback string) string {
	candidate := strings.ToLower(strings.TrimSpace(requested))
	if candidate == "" {
		candidate = strings.ToLower(strings.TrimSpace(callerPreferred))
	}
	if candidate == "" {
		return fallback
	}
	for _, locale := range supported {
		if locale == candidate {
			return candidate
		}
	}
	return fallback
}

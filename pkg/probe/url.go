package probe

import "strings"

// DefaultURL is probed when no target is configured
const DefaultURL = "https://example.com"

// NormalizeURL prefixes the target with https:// unless
// it already starts with http:// or https://.
// An empty target resolves to DefaultURL.
func NormalizeURL(raw string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		return DefaultURL
	}

	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return target
	}
	return "https://" + target
}

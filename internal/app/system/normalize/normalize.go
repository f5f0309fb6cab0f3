// Package normalize holds small canonicalization helpers applied to values
// before they are stored or forwarded to the API.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role token.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a user-supplied query value, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Tags trims every tag and drops empty segments. It is idempotent and is
// the single normalization applied to member skills on every fetch path.
func Tags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

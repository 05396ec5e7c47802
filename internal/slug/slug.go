// Package slug derives URL-safe room identifiers from display names.
package slug

import "strings"

// Make converts a display name into a URL-safe slug: the input is
// lower-cased, every maximal run of characters outside [a-z0-9] collapses
// to a single '-', and leading/trailing dashes are stripped.
//
// Make is total: any input, including the empty string, produces some
// slug. A name with no alphanumeric characters yields ""; callers that
// need a non-empty identifier must reject that themselves.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}

	return b.String()
}

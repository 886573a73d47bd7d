package security

import "strings"

// CheckOrigin reports whether a request Origin header is acceptable for the
// configured site origin. Requests without an Origin header (curl, server to
// server) pass; browsers always send one on cross-site POSTs.
func CheckOrigin(origin, configured string) bool {
	if origin == "" {
		return true
	}
	return normalizeOrigin(origin) == normalizeOrigin(configured)
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}

package security

import (
	"strconv"
	"strings"
)

// CheckContentLength returns false when the declared Content-Length exceeds
// max. A missing or unparseable header is not rejected here; the bounded
// body read catches oversized payloads that lie about their length.
func CheckContentLength(header string, max int64) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return true
	}
	n, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return true
	}
	return n <= max
}

package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// maxKeyLength caps key length to keep backend keys short.
const maxKeyLength = 64

// KeyFunc extracts a unique identifier from an HTTP request.
type KeyFunc func(*http.Request) string

// ByIP keys requests by client IP address.
func ByIP() KeyFunc {
	return func(r *http.Request) string {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}
		return host
	}
}

// ByPath keys requests by URL path, typically combined with ByIP.
func ByPath() KeyFunc {
	return func(r *http.Request) string {
		return r.URL.Path
	}
}

// Composite joins multiple key functions into one key. Long keys are
// hashed to 32 hex chars to keep backend keys bounded.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 && len(parts[0]) <= maxKeyLength {
			return parts[0]
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			return hex.EncodeToString(hash[:16])
		}
		return combined
	}
}

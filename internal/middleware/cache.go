package middleware

import (
	"net/http"
	"regexp"
	"strings"
)

// Bundler output such as index-4f9a1c2b.js.
var fingerprintedAsset = regexp.MustCompile(`-[A-Za-z0-9_]{8,}\.[a-z0-9]+$`)

// CacheControl sets Cache-Control by route class.
type CacheControl struct {
	assetPrefix string
}

// NewCacheControl treats paths under assetPrefix as bundled static assets.
func NewCacheControl(assetPrefix string) *CacheControl {
	if assetPrefix == "" {
		assetPrefix = "/assets/"
	}
	return &CacheControl{assetPrefix: assetPrefix}
}

func (c *CacheControl) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", c.policyFor(r.URL.Path))
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Pragma", "no-cache")
		}
		next.ServeHTTP(w, r)
	})
}

func (c *CacheControl) policyFor(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/"), isProbePath(path):
		// Generated tips and the saved list change on every call.
		return "no-store"
	case strings.HasPrefix(path, c.assetPrefix):
		if fingerprintedAsset.MatchString(strings.ToLower(path)) {
			return "public, max-age=31536000, immutable"
		}
		return "public, max-age=3600"
	default:
		// index.html and client-side routes must pick up new bundles.
		return "no-cache"
	}
}

func isProbePath(path string) bool {
	return path == "/health" || path == "/ready" || path == "/live"
}

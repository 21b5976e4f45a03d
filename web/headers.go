package web

import (
	"net/http"
	"strings"
	"time"
)

// HeaderHandler sets the configured headers on every response.
func HeaderHandler(h http.Handler, headers map[string]string) http.Handler {
	if len(headers) == 0 {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		h.ServeHTTP(w, r)
	})
}

// IsPage reports whether the URL path names a generated page rather than a
// copied static file.
func IsPage(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, ".html") || strings.HasSuffix(p, "/sitemap.txt")
}

// ExpiresHandler sets the Expires header, using pages for generated pages and
// static for everything else. A zero duration leaves the header unset.
func ExpiresHandler(h http.Handler, pages, static time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expiry := static
		if IsPage(r.URL.Path) {
			expiry = pages
		}
		if expiry != 0 {
			w.Header().Set("Expires", time.Now().Add(expiry).UTC().Format(http.TimeFormat))
		}
		h.ServeHTTP(w, r)
	})
}

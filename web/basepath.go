/*
Package web holds the HTTP middleware used to preview an exported site.

The exported files expect to live under the base path, so the preview server
mounts them there:

	h := web.ErrorHandler(web.BasePathHandler(http.FileServer(http.FS(out)), "/sioncodes"), out)
*/
package web

import (
	"net/http"
	"strings"
)

// BasePathHandler serves h under base. Requests for the bare base or for "/"
// are redirected to base+"/"; anything else outside base is a 404.
func BasePathHandler(h http.Handler, base string) http.Handler {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return h
	}
	stripped := http.StripPrefix(base, h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/" || r.URL.Path == base:
			http.Redirect(w, r, base+"/", http.StatusFound)
		case strings.HasPrefix(r.URL.Path, base+"/"):
			stripped.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

package web

import (
	"io/fs"
	"net/http"
)

// NotFoundPage is the file served in place of a bare 404 response.
const NotFoundPage = "404.html"

// ErrorHandler replaces 404 responses from h with the exported not-found
// page in fsys. When fsys has no such page the response from h is sent unchanged.
func ErrorHandler(h http.Handler, fsys fs.FS) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(&notFoundWriter{ResponseWriter: w, fsys: fsys, head: r.Method == http.MethodHead}, r)
	})
}

// notFoundWriter swallows the body of a 404 after writing the page itself.
type notFoundWriter struct {
	http.ResponseWriter
	fsys     fs.FS
	head     bool
	replaced bool
	err      error
}

func (w *notFoundWriter) Write(b []byte) (int, error) {
	if w.replaced {
		return len(b), w.err
	}
	return w.ResponseWriter.Write(b)
}

func (w *notFoundWriter) WriteHeader(statusCode int) {
	if statusCode != http.StatusNotFound {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	b, err := fs.ReadFile(w.fsys, NotFoundPage)
	if err != nil {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Del("Content-Length")
	h.Del("X-Content-Type-Options")
	w.ResponseWriter.WriteHeader(statusCode)
	w.replaced = true
	if !w.head {
		_, w.err = w.ResponseWriter.Write(b)
	}
}

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

var site = fstest.MapFS{
	"index.html":         {Data: []byte("<h1>home</h1>")},
	"posts/a/index.html": {Data: []byte("<h1>a</h1>")},
	"assets/x.png":       {Data: []byte("png")},
	"404.html":           {Data: []byte("<h1>lost</h1>")},
}

func get(h http.Handler, p string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
	return w
}

func TestPreview(t *testing.T) {
	h := ErrorHandler(BasePathHandler(http.FileServer(http.FS(site)), "/sioncodes/"), site)
	var tests = []struct {
		path     string
		code     int
		body     string
		location string
	}{
		{"/", http.StatusFound, "", "/sioncodes/"},
		{"/sioncodes", http.StatusFound, "", "/sioncodes/"},
		{"/sioncodes/", http.StatusOK, "<h1>home</h1>", ""},
		{"/sioncodes/posts/a/", http.StatusOK, "<h1>a</h1>", ""},
		{"/sioncodes/assets/x.png", http.StatusOK, "png", ""},
		{"/sioncodes/posts/missing/", http.StatusNotFound, "<h1>lost</h1>", ""},
		{"/elsewhere/", http.StatusNotFound, "<h1>lost</h1>", ""},
	}
	for _, tt := range tests {
		w := get(h, tt.path)
		if w.Code != tt.code {
			t.Errorf("%s: expected status %d but got %d", tt.path, tt.code, w.Code)
		}
		if tt.body != "" && w.Body.String() != tt.body {
			t.Errorf("%s: expected body %q but got %q", tt.path, tt.body, w.Body.String())
		}
		if tt.location != "" && w.Header().Get("Location") != tt.location {
			t.Errorf("%s: expected redirect to %q but got %q", tt.path, tt.location, w.Header().Get("Location"))
		}
	}
}

func TestErrorHandlerWithoutPage(t *testing.T) {
	h := ErrorHandler(http.NotFoundHandler(), fstest.MapFS{})
	w := get(h, "/nope")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "404 page not found") {
		t.Errorf("Unexpected response %d %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Unexpected content type %q", ct)
	}
}

func TestRootBase(t *testing.T) {
	h := BasePathHandler(http.FileServer(http.FS(site)), "")
	if w := get(h, "/posts/a/"); w.Code != http.StatusOK {
		t.Errorf("Expected 200 but got %d", w.Code)
	}
}

func TestHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := HeaderHandler(ExpiresHandler(ok, time.Minute, 0), map[string]string{"X-Frame-Options": "DENY"})

	w := get(h, "/sioncodes/posts/a/")
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("Configured header not set")
	}
	exp, err := http.ParseTime(w.Header().Get("Expires"))
	if err != nil {
		t.Fatalf("Bad Expires header: %v", err)
	}
	if d := time.Until(exp); d < 30*time.Second || d > 2*time.Minute {
		t.Errorf("Unexpected expiry %v", d)
	}

	w = get(h, "/sioncodes/assets/x.png")
	if w.Header().Get("Expires") != "" {
		t.Error("Static file should have no Expires header")
	}
}

func TestIsPage(t *testing.T) {
	var tests = map[string]bool{
		"/":                   true,
		"/b/posts/a/":         true,
		"/b/404.html":         true,
		"/b/sitemap.txt":      true,
		"/b/assets/x.png":     false,
		"/b/site.webmanifest": false,
	}
	for p, expect := range tests {
		if r := IsPage(p); r != expect {
			t.Errorf("IsPage(%q): expected %v but got %v", p, expect, r)
		}
	}
}

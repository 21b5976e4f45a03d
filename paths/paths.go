/*
Package paths computes the public URLs of pages and assets for a site that
may be served from a subdirectory rather than a domain root.

The base path is fixed when a Resolver is created and applied the same way
to page routes and static assets:

	r := paths.New("/sioncodes")
	r.Page("/posts/hello/")    // "/sioncodes/posts/hello/"
	r.Asset("assets/x.png")    // "/sioncodes/assets/x.png"
	r.Asset(r.Asset("x.png"))  // "/sioncodes/x.png"
*/
package paths

import (
	"net/url"
	"path"
	"strings"
)

// Resolver applies a fixed base path to logical site paths.
type Resolver struct {
	base string
}

// New returns a Resolver for the given base path. The base is normalized to
// have a single leading slash and no trailing slash; "" and "/" both mean
// the site is served from the root.
func New(base string) *Resolver {
	return &Resolver{base: CleanBase(base)}
}

// Base returns the normalized base path.
func (r *Resolver) Base() string {
	return r.base
}

// Page returns the public URL of a page route.
func (r *Resolver) Page(p string) string {
	return Resolve(p, r.base)
}

// Asset returns the public URL of a static asset such as an image.
func (r *Resolver) Asset(p string) string {
	return Resolve(p, r.base)
}

// Resolve normalizes raw to begin with exactly one "/" and prefixes base,
// unless raw is already under base. Applying Resolve twice with the same
// base gives the same result as applying it once.
func Resolve(raw, base string) string {
	p := Normalize(raw)
	base = CleanBase(base)
	if base == "" {
		return p
	}
	if HasBase(p, base) {
		return p
	}
	return base + p
}

// Normalize returns p with exactly one leading "/".
func Normalize(p string) string {
	return "/" + strings.TrimLeft(p, "/")
}

// HasBase reports whether p lies under base. The match is on whole path
// segments, so "/sioncodes-old/x" is not under "/sioncodes".
func HasBase(p, base string) bool {
	if base == "" {
		return true
	}
	return p == base || strings.HasPrefix(p, base+"/")
}

// CleanBase normalizes a configured base path.
func CleanBase(base string) string {
	base = strings.TrimSpace(base)
	base = strings.Trim(base, "/")
	if base == "" {
		return ""
	}
	return path.Clean("/" + base)
}

// Join builds a page route from its segments. A trailing slash is kept so
// routes map onto directory index files.
func Join(parts ...string) string {
	p := path.Join(append([]string{"/"}, parts...)...)
	if p != "/" {
		p += "/"
	}
	return p
}

// Segment turns a free-form name, such as a tag, into one lower-case path
// segment. Slashes become "-", and a name made only of dots has them
// replaced, so the segment always names a child of its parent folder.
func Segment(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("/", "-", "\\", "-").Replace(s)
	if strings.Trim(s, ".") == "" {
		s = "-" + strings.Repeat("-", len(s))
	}
	return s
}

// Escape percent-encodes each segment of a route for use in a URL, so
// "/tags/c#/" becomes "/tags/c%23/".
func Escape(route string) string {
	parts := strings.Split(route, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

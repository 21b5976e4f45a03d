package render

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sioncodes/blog/paths"
)

// MenuItem is one entry of the menu bar.
type MenuItem struct {
	Label string
	URL   string
}

// Menu is the menu bar: the items always shown and those that overflow
// into the "+" list.
type Menu struct {
	Visible  []MenuItem
	Overflow []MenuItem
}

// NewMenu lays out Home, the tags and About. Home is always first and About
// always last. When there are more than max items, max-1 are kept visible
// and the remaining tags overflow.
func NewMenu(tags []string, max int, r *paths.Resolver) Menu {
	items := []MenuItem{{Label: "Home", URL: r.Page("/")}}
	for _, t := range tags {
		if t == "Home" || t == "About" {
			continue
		}
		items = append(items, MenuItem{Label: t, URL: TagURL(t, r)})
	}
	items = append(items, MenuItem{Label: "About", URL: r.Page(paths.Join("about"))})

	if len(items) <= max || max < 3 {
		return Menu{Visible: items}
	}
	visible := make([]MenuItem, 0, max-1)
	visible = append(visible, items[:max-2]...)
	visible = append(visible, items[len(items)-1])
	return Menu{
		Visible:  visible,
		Overflow: items[max-2 : len(items)-1],
	}
}

// TagRoute returns the route of the page listing tag. It names the folder
// the page is written to.
func TagRoute(tag string) string {
	return paths.Join("tags", paths.Segment(tag))
}

// TagURL returns the public URL of the page listing tag.
func TagURL(tag string, r *paths.Resolver) string {
	return r.Page(paths.Escape(TagRoute(tag)))
}

// PostURL returns the public URL of the post with the given slug.
func PostURL(slug string, r *paths.Resolver) string {
	return r.Page(paths.Join("posts", slug))
}

// TagTitle formats a tag for headings: each word starts with an upper-case
// letter and the rest is left alone, so "go" becomes "Go" and "CI/CD" is
// unchanged.
func TagTitle(tag string) string {
	return cases.Title(language.English, cases.NoLower).String(tag)
}

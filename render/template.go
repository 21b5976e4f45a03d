package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/sioncodes/blog/content"
	"github.com/sioncodes/blog/paths"
)

//go:embed templates
var defaultTemplates embed.FS

// TemplateDir is the site folder whose files override the built-in
// templates.
const TemplateDir = "template"

// Names of the page templates every site has.
const (
	HomeTemplate     = "home"
	PostTemplate     = "post"
	TagTemplate      = "tag"
	AboutTemplate    = "about"
	NotFoundTemplate = "notfound"
)

// Site is the data shared by every page.
type Site struct {
	Title       string
	Description string
	Author      string
	URL         string // Origin, without the base path
	Menu        Menu
}

// Page is what is passed to page templates.
type Page struct {
	Site    Site
	Title   string         // Full document title
	Heading string         // Main heading on the page
	URL     string         // Public URL of this page
	Image   string         // Social preview image, if any
	Posts   []content.Post // Listed posts (home and tag pages)
	Post    *content.Post  // The post being shown (post pages)
	Latest  []content.Post // Sidebar of recent posts (post pages)
	Tag     string         // Display name of the tag (tag pages)
	Content template.HTML  // Rendered Markdown
}

// Templates holds the parsed page templates and the sitemap template.
type Templates struct {
	html    *template.Template
	sitemap *texttemplate.Template
}

// LoadTemplates parses the built-in templates and then any "template/*.html"
// files and "template/sitemap.txt" in fsys, which override definitions with
// the same name. fsys may be nil.
func LoadTemplates(fsys fs.FS, r *paths.Resolver) (*Templates, error) {
	funcMap := template.FuncMap{
		"page":      r.Page,
		"asset":     r.Asset,
		"posturl":   func(slug string) string { return PostURL(slug, r) },
		"tagurl":    func(tag string) string { return TagURL(tag, r) },
		"tagtitle":  TagTitle,
		"date":      FormatDate,
		"join":      path.Join,
		"lower":     strings.ToLower,
		"trimspace": strings.TrimSpace,
		"now":       time.Now,
	}
	tpl, err := template.New("blog").Funcs(funcMap).ParseFS(defaultTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("LoadTemplates: %w", err)
	}
	sitemapSrc, err := fs.ReadFile(defaultTemplates, "templates/sitemap.txt")
	if err != nil {
		return nil, fmt.Errorf("LoadTemplates: %w", err)
	}
	if fsys != nil {
		fi, err := fs.Stat(fsys, TemplateDir)
		if err == nil && fi.IsDir() {
			matches, err := fs.Glob(fsys, path.Join(TemplateDir, "*.html"))
			if err != nil {
				return nil, fmt.Errorf("LoadTemplates: %w", err)
			}
			if len(matches) > 0 {
				tpl, err = tpl.ParseFS(fsys, path.Join(TemplateDir, "*.html"))
				if err != nil {
					return nil, fmt.Errorf("LoadTemplates: %w", err)
				}
			}
			b, err := fs.ReadFile(fsys, path.Join(TemplateDir, "sitemap.txt"))
			if err == nil {
				sitemapSrc = b
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("LoadTemplates: %w", err)
			}
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("LoadTemplates: %w", err)
		}
	}
	for _, name := range []string{HomeTemplate, PostTemplate, TagTemplate, AboutTemplate, NotFoundTemplate} {
		if tpl.Lookup(name) == nil {
			return nil, fmt.Errorf("LoadTemplates: missing template %q", name)
		}
	}
	sitemap, err := texttemplate.New("sitemap").Parse(string(sitemapSrc))
	if err != nil {
		return nil, fmt.Errorf("LoadTemplates: %w", err)
	}
	return &Templates{html: tpl, sitemap: sitemap}, nil
}

// Execute renders the named page template.
func (t *Templates) Execute(w io.Writer, name string, p Page) error {
	if err := t.html.ExecuteTemplate(w, name, p); err != nil {
		return fmt.Errorf("Execute %s: %w", name, err)
	}
	return nil
}

// Sitemap renders the sitemap from a list of absolute URLs.
func (t *Templates) Sitemap(w io.Writer, urls []string) error {
	if err := t.sitemap.Execute(w, urls); err != nil {
		return fmt.Errorf("Sitemap: %w", err)
	}
	return nil
}

// Defined lists the defined HTML templates.
func (t *Templates) Defined() string {
	return t.html.DefinedTemplates()
}

// FormatDate shows a front matter date as "2006-01-02". Unparseable dates
// are returned unchanged.
func FormatDate(s string) string {
	d, err := content.ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format("2006-01-02")
}

/*
Package export writes a complete static copy of the blog to a directory.

Every export rebuilds the whole site from the source files:

	index.html                 all posts, newest first
	posts/<slug>/index.html    one page per post
	tags/<tag>/index.html      one page per tag, plus "uncategorized"
	about/index.html           the about page
	404.html                   the not-found page
	sitemap.txt                absolute URLs of all pages

Static files under the public directory are copied as they are.
*/
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sioncodes/blog/config"
	"github.com/sioncodes/blog/content"
	"github.com/sioncodes/blog/index"
	"github.com/sioncodes/blog/paths"
	"github.com/sioncodes/blog/render"
)

var (
	// ErrDuplicateRoute is returned when two pages would be written to the
	// same route.
	ErrDuplicateRoute = errors.New("route written twice")
	// ErrUnsafeOutput is returned for an output directory that overlaps the
	// site sources.
	ErrUnsafeOutput = errors.New("output overlaps the site sources")
)

// Result summarizes an export.
type Result struct {
	Posts  int      // Number of posts
	Tags   int      // Number of tag pages
	Assets int      // Number of static files copied
	Pages  []string // Public URLs of the generated pages
}

// Exporter renders a site read from an fs.FS.
type Exporter struct {
	cfg      *config.Config
	fsys     fs.FS
	resolver *paths.Resolver
	md       render.Renderer
	tpl      *render.Templates
}

// New prepares an Exporter for the site in fsys. Templates and the Markdown
// engine are loaded once here.
func New(cfg *config.Config, fsys fs.FS, r *paths.Resolver) (*Exporter, error) {
	md, err := render.NewRenderer(cfg.Markdown, r)
	if err != nil {
		return nil, fmt.Errorf("export.New: %w", err)
	}
	tpl, err := render.LoadTemplates(fsys, r)
	if err != nil {
		return nil, fmt.Errorf("export.New: %w", err)
	}
	return &Exporter{
		cfg:      cfg,
		fsys:     fsys,
		resolver: r,
		md:       md,
		tpl:      tpl,
	}, nil
}

// Templates returns the loaded templates.
func (e *Exporter) Templates() *render.Templates {
	return e.tpl
}

// Export writes the whole site and then swaps it in for outDir. When any
// step fails the previous contents of outDir are left untouched.
func (e *Exporter) Export(outDir string) (*Result, error) {
	posts, err := index.Build(content.Loader{FS: e.fsys, Dir: e.cfg.Posts}, e.resolver)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	tags := index.NewTagIndex(posts)

	// Pages are written to a staging directory that replaces outDir only
	// once everything has been written.
	parent := filepath.Dir(filepath.Clean(outDir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	staging, err := os.MkdirTemp(parent, ".export-*")
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	defer os.RemoveAll(staging)
	if err := os.Chmod(staging, 0o755); err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}

	res := &Result{Posts: len(posts), Tags: tags.Len()}
	res.Assets, err = copyTree(e.fsys, e.cfg.Public, staging)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}

	w := &writer{dir: staging, tpl: e.tpl, res: res, routes: make(map[string]bool)}
	site := render.Site{
		Title:       e.cfg.Title,
		Description: e.cfg.Description,
		Author:      e.cfg.Author,
		URL:         strings.TrimSuffix(e.cfg.URL, "/"),
		Menu:        render.NewMenu(tags.Names(), e.cfg.Menu, e.resolver),
	}

	// home
	err = w.page(paths.Join(), render.HomeTemplate, render.Page{
		Site:  site,
		Title: site.Title,
		URL:   e.resolver.Page("/"),
		Posts: posts,
	})
	if err != nil {
		return nil, err
	}

	// posts
	for i := range posts {
		p := posts[i]
		html, err := e.md.Render(p.Content)
		if err != nil {
			return nil, fmt.Errorf("Export %s: %w", p.Slug, err)
		}
		err = w.page(paths.Join("posts", p.Slug), render.PostTemplate, render.Page{
			Site:    site,
			Title:   p.Title + " | " + site.Title,
			Heading: p.Title,
			URL:     render.PostURL(p.Slug, e.resolver),
			Image:   p.OGImage.URL,
			Post:    &p,
			Latest:  index.Latest(posts, p.Slug, e.cfg.Latest),
			Content: html,
		})
		if err != nil {
			return nil, err
		}
	}

	// tags
	for _, b := range tags.Buckets() {
		heading := "Articles on " + render.TagTitle(b.Name)
		err = w.page(render.TagRoute(b.Name), render.TagTemplate, render.Page{
			Site:    site,
			Title:   heading + " | " + site.Title,
			Heading: heading,
			URL:     render.TagURL(b.Name, e.resolver),
			Posts:   b.Posts,
			Tag:     render.TagTitle(b.Name),
		})
		if err != nil {
			return nil, err
		}
	}

	// about
	about, err := e.aboutPage(site)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	if err = w.page(paths.Join("about"), render.AboutTemplate, about); err != nil {
		return nil, err
	}

	// 404 is not listed in the sitemap
	var buf bytes.Buffer
	err = e.tpl.Execute(&buf, render.NotFoundTemplate, render.Page{
		Site:  site,
		Title: "404: This page could not be found | " + site.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	if err = w.write("404.html", buf.Bytes()); err != nil {
		return nil, err
	}

	// sitemap
	urls := make([]string, len(res.Pages))
	for i, u := range res.Pages {
		urls[i] = site.URL + u
	}
	buf.Reset()
	if err = e.tpl.Sitemap(&buf, urls); err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	if err = w.write("sitemap.txt", buf.Bytes()); err != nil {
		return nil, err
	}

	if err = os.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	if err = os.Rename(staging, outDir); err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}

	log.Printf("Exported %d posts, %d tags, %d pages and %d assets to %q", res.Posts, res.Tags, len(res.Pages), res.Assets, outDir)
	return res, nil
}

// aboutPage builds the about page from the optional about Markdown file,
// whose front matter may set the title and a picture.
func (e *Exporter) aboutPage(site render.Site) (render.Page, error) {
	page := render.Page{
		Site:    site,
		Title:   "About | " + site.Title,
		Heading: "About the Author",
		URL:     e.resolver.Page(paths.Join("about")),
	}
	b, err := fs.ReadFile(e.fsys, e.cfg.About)
	if errors.Is(err, fs.ErrNotExist) {
		return page, nil
	} else if err != nil {
		return page, &content.LoadError{Path: e.cfg.About, Err: err}
	}
	fm, body, err := content.ParseFrontMatter(b)
	if errors.Is(err, content.ErrNoFrontMatter) {
		body = b
	} else if err != nil {
		return page, &content.LoadError{Path: e.cfg.About, Err: err}
	}
	if fm.Title != "" {
		page.Heading = fm.Title
		page.Title = fm.Title + " | " + site.Title
	}
	if fm.CoverImage != "" {
		page.Image = e.resolver.Asset(fm.CoverImage)
	} else if fm.Author.Picture != "" {
		page.Image = e.resolver.Asset(fm.Author.Picture)
	}
	page.Content, err = e.md.Render(string(body))
	if err != nil {
		return page, fmt.Errorf("aboutPage: %w", err)
	}
	return page, nil
}

// writer puts rendered pages in the output directory.
type writer struct {
	dir    string
	tpl    *render.Templates
	res    *Result
	routes map[string]bool
}

// page renders a template to route/index.html and records the route. Each
// route may be written once.
func (w *writer) page(route, name string, p render.Page) error {
	if w.routes[route] {
		return fmt.Errorf("Export: %w: %s", ErrDuplicateRoute, route)
	}
	w.routes[route] = true
	var buf bytes.Buffer
	if err := w.tpl.Execute(&buf, name, p); err != nil {
		return fmt.Errorf("Export %s: %w", route, err)
	}
	if err := w.write(path.Join(strings.TrimPrefix(route, "/"), "index.html"), buf.Bytes()); err != nil {
		return err
	}
	w.res.Pages = append(w.res.Pages, p.URL)
	return nil
}

// write stores b at the slash-separated name under the output directory.
func (w *writer) write(name string, b []byte) error {
	fn := filepath.Join(w.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.WriteFile(fn, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// CheckOutput returns ErrUnsafeOutput when outDir, taken relative to root,
// is or contains root, or overlaps the posts, public or template folders or
// the about file. Export replaces outDir entirely.
func CheckOutput(root, outDir string, cfg *config.Config) error {
	abs := func(p string) (string, error) {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		return filepath.Abs(p)
	}
	out, err := abs(outDir)
	if err != nil {
		return fmt.Errorf("CheckOutput: %w", err)
	}
	rootDir, err := abs(".")
	if err != nil {
		return fmt.Errorf("CheckOutput: %w", err)
	}
	if within(rootDir, out) {
		return fmt.Errorf("CheckOutput: %w: %s contains the site root", ErrUnsafeOutput, outDir)
	}
	for _, src := range []string{cfg.Posts, cfg.Public, render.TemplateDir, cfg.About} {
		s, err := abs(src)
		if err != nil {
			return fmt.Errorf("CheckOutput: %w", err)
		}
		if within(s, out) || within(out, s) {
			return fmt.Errorf("CheckOutput: %w: %s and %s", ErrUnsafeOutput, outDir, src)
		}
	}
	return nil
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// copyTree copies the files under dir in fsys into outDir, skipping hidden
// files and folders. A missing dir copies nothing.
func copyTree(fsys fs.FS, dir, outDir string) (int, error) {
	if _, err := fs.Stat(fsys, dir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	count := 0
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
		target := filepath.Join(outDir, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := copyFile(fsys, p, target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("copyTree: %w", err)
	}
	return count, nil
}

func copyFile(fsys fs.FS, name, target string) error {
	in, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

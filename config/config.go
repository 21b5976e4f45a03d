/*
Package config reads the site settings from a TOML file, "blog.toml" by
convention, at the root of the site:

	title = "SiônCodes."
	url = "https://sionabraham-senvo.github.io"
	basepath = "/sioncodes"
	markdown = "goldmark"

	[headers]
	X-Frame-Options = "DENY"

Every key is optional. The base path applied to generated URLs is chosen
once, from the production flag, by BasePath. Set basepath to "/" to serve
a production build from the domain root.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// Defaults used when blog.toml leaves a setting empty.
const (
	DefaultFile     = "blog.toml"
	DefaultTitle    = "SiônCodes."
	DefaultPosts    = "_posts"
	DefaultPublic   = "public"
	DefaultOutput   = "out"
	DefaultAbout    = "about.md"
	DefaultBasePath = "/sioncodes"
	DefaultMarkdown = "blackfriday"
	DefaultLatest   = 5
	DefaultMenu     = 6
)

// Config contains configuration data from the blog.toml file.
type Config struct {
	Title         string            `toml:"title"`         // Site title, appended to page titles
	Description   string            `toml:"description"`   // Shown on the home page
	URL           string            `toml:"url"`           // Origin used for absolute URLs in the sitemap
	Author        string            `toml:"author"`        // Site author, shown on the about page
	Posts         string            `toml:"posts"`         // Directory holding the posts
	Public        string            `toml:"public"`        // Directory of static assets copied as-is
	Output        string            `toml:"output"`        // Directory the site is exported to
	About         string            `toml:"about"`         // Markdown file for the about page
	ProdBasePath  string            `toml:"basepath"`      // Base path in production
	DevBasePath   string            `toml:"devbasepath"`   // Base path otherwise
	Markdown      string            `toml:"markdown"`      // "blackfriday" or "goldmark"
	Latest        int               `toml:"latest"`        // Posts in the latest-posts sidebar
	Menu          int               `toml:"menu"`          // Visible menu bar items
	Expires       Duration          `toml:"expires"`       // Preview server expiry for pages
	StaticExpires Duration          `toml:"staticexpires"` // Preview server expiry for assets
	Headers       map[string]string `toml:"headers"`       // Extra preview server headers
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Posts == "" {
		c.Posts = DefaultPosts
	}
	if c.Public == "" {
		c.Public = DefaultPublic
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.About == "" {
		c.About = DefaultAbout
	}
	if c.ProdBasePath == "" {
		c.ProdBasePath = DefaultBasePath
	}
	if c.Markdown == "" {
		c.Markdown = DefaultMarkdown
	}
	if c.Latest <= 0 {
		c.Latest = DefaultLatest
	}
	if c.Menu <= 0 {
		c.Menu = DefaultMenu
	}
}

// Load returns configuration from the named file in fsys.
// It is not an error if the file does not exist; defaults are returned.
func Load(fsys fs.FS, name string) (*Config, error) {
	var cfg Config
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("Cannot read config file: %w", err)
		}
	} else {
		err = toml.Unmarshal(b, &cfg)
		if err != nil {
			return nil, fmt.Errorf("Cannot parse config file: %w", err)
		}
	}
	cfg.setDefaults()
	return &cfg, nil
}

// BasePath returns the base path for the given mode. Production sites are
// served from a subdirectory; development builds use DevBasePath, which is
// normally empty.
func (c *Config) BasePath(production bool) string {
	if production {
		return c.ProdBasePath
	}
	return c.DevBasePath
}

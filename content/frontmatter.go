package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Author identifies who wrote a post.
type Author struct {
	Name    string `yaml:"name" toml:"name"`       // Display name
	Picture string `yaml:"picture" toml:"picture"` // Path to the author's picture
}

// OGImage is the image used for social previews.
type OGImage struct {
	URL string `yaml:"url" toml:"url"` // Path to the image
}

// FrontMatter holds data scraped from the top of a Markdown file.
type FrontMatter struct {
	Title          string   // Title of the post
	Date           string   // Publish date as written in the file
	Excerpt        string   // Short summary for listings
	CoverImage     string   // Path to the cover image
	ThumbnailImage string   // Optional path to a smaller image for lists
	Author         Author   // Who wrote it
	OGImage        OGImage  // Social preview image
	Tags           []string // Optional tags, in the order given
}

// rawFrontMatter is the decoding target. Date stays untyped because TOML
// has native date values while YAML front matter usually carries a string.
type rawFrontMatter struct {
	Title          string   `yaml:"title" toml:"title"`
	Date           any      `yaml:"date" toml:"date"`
	Excerpt        string   `yaml:"excerpt" toml:"excerpt"`
	CoverImage     string   `yaml:"coverImage" toml:"coverImage"`
	ThumbnailImage string   `yaml:"thumbnailImage" toml:"thumbnailImage"`
	Author         Author   `yaml:"author" toml:"author"`
	OGImage        OGImage  `yaml:"ogImage" toml:"ogImage"`
	Tags           []string `yaml:"tags" toml:"tags"`
}

// formats lists the supported front matter blocks: YAML between "---" lines
// and TOML between "+++" lines.
var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// ParseFrontMatter splits b into front matter and Markdown body. It is an
// error for b to have no front matter block.
func ParseFrontMatter(b []byte) (FrontMatter, []byte, error) {
	var raw rawFrontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(b), &raw, formats...)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return FrontMatter{}, nil, ErrNoFrontMatter
		}
		return FrontMatter{}, nil, fmt.Errorf("ParseFrontMatter: %w", err)
	}
	date, err := dateString(raw.Date)
	if err != nil {
		return FrontMatter{}, nil, err
	}
	fm := FrontMatter{
		Title:          strings.TrimSpace(raw.Title),
		Date:           date,
		Excerpt:        raw.Excerpt,
		CoverImage:     raw.CoverImage,
		ThumbnailImage: raw.ThumbnailImage,
		Author:         raw.Author,
		OGImage:        raw.OGImage,
		Tags:           cleanTags(raw.Tags),
	}
	return fm, bytes.TrimSpace(body), nil
}

// dateString renders a decoded date value back to its ISO-8601 text.
func dateString(v any) (string, error) {
	switch d := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(d), nil
	case time.Time:
		if d.Location() == time.UTC && d.Equal(d.Truncate(24*time.Hour)) {
			return d.Format("2006-01-02"), nil
		}
		return d.Format(time.RFC3339), nil
	case toml.LocalDate:
		return d.String(), nil
	case toml.LocalDateTime:
		return d.String(), nil
	case fmt.Stringer:
		return d.String(), nil
	}
	return "", fmt.Errorf("%w: unsupported date value %v", ErrBadDate, v)
}

// cleanTags drops blank tags and surrounding space, keeping order.
func cleanTags(tags []string) []string {
	var r []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			r = append(r, t)
		}
	}
	return r
}

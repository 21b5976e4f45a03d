package content

import "time"

// AssetResolver turns a logical asset path into its public URL.
type AssetResolver interface {
	Asset(p string) string
}

// Post is a fully loaded blog post. Image paths are public URLs. A Post is
// not modified after NewPost returns it.
type Post struct {
	Slug           string
	Title          string
	Date           string    // As written in the front matter
	Published      time.Time // Parsed Date, used for ordering
	Excerpt        string
	Author         Author
	CoverImage     string
	ThumbnailImage string
	OGImage        OGImage
	Tags           []string
	Content        string // Markdown body
}

// NewPost builds a Post from src, resolving every image path through r.
func NewPost(src Source, r AssetResolver) Post {
	fm := src.FrontMatter
	asset := func(p string) string {
		if p == "" {
			return ""
		}
		return r.Asset(p)
	}
	var tags []string
	if len(fm.Tags) > 0 {
		tags = make([]string, len(fm.Tags))
		copy(tags, fm.Tags)
	}
	return Post{
		Slug:      src.Slug,
		Title:     fm.Title,
		Date:      fm.Date,
		Published: src.Published,
		Excerpt:   fm.Excerpt,
		Author: Author{
			Name:    fm.Author.Name,
			Picture: asset(fm.Author.Picture),
		},
		CoverImage:     asset(fm.CoverImage),
		ThumbnailImage: asset(fm.ThumbnailImage),
		OGImage:        OGImage{URL: asset(fm.OGImage.URL)},
		Tags:           tags,
		Content:        src.Body,
	}
}

// Thumbnail returns the thumbnail image, falling back to the cover image.
func (p Post) Thumbnail() string {
	if p.ThumbnailImage != "" {
		return p.ThumbnailImage
	}
	return p.CoverImage
}

// Uncategorized reports whether the post has no tags.
func (p Post) Uncategorized() bool {
	return len(p.Tags) == 0
}

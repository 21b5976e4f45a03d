// Package index orders loaded posts and groups them by tag.
package index

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sioncodes/blog/content"
)

// ErrDuplicateSlug is returned when two post files map to the same slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Loader yields parsed post sources. content.Loader implements it.
type Loader interface {
	Load() ([]content.Source, error)
}

// Build loads every post, resolves its image paths through r and returns
// the posts newest first. Posts with equal dates keep the loader's order.
func Build(l Loader, r content.AssetResolver) ([]content.Post, error) {
	srcs, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	seen := make(map[string]string, len(srcs))
	posts := make([]content.Post, 0, len(srcs))
	for _, src := range srcs {
		if prev, ok := seen[src.Slug]; ok {
			return nil, fmt.Errorf("Build: %w %q in %s and %s", ErrDuplicateSlug, src.Slug, prev, src.Path)
		}
		seen[src.Slug] = src.Path
		posts = append(posts, content.NewPost(src, r))
	}
	sortByDate(posts)
	return posts, nil
}

// sortByDate sorts the posts by publish time in reverse order.
func sortByDate(p []content.Post) {
	sort.SliceStable(p, func(i, j int) bool { return p[i].Published.After(p[j].Published) })
}

// Latest returns up to n posts from posts, skipping the one with slug
// exclude. Use "" to skip nothing.
func Latest(posts []content.Post, exclude string, n int) []content.Post {
	var r []content.Post
	for _, p := range posts {
		if len(r) >= n {
			break
		}
		if exclude != "" && p.Slug == exclude {
			continue
		}
		r = append(r, p)
	}
	return r
}

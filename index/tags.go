package index

import (
	"sort"

	"github.com/sioncodes/blog/content"
	"github.com/sioncodes/blog/paths"
)

// Uncategorized is the tag given to posts that have none.
const Uncategorized = "uncategorized"

// GroupByTag maps each tag, exactly as written, to the posts carrying it in
// the order of posts. Posts without tags are listed under Uncategorized
// and nowhere else.
func GroupByTag(posts []content.Post) map[string][]content.Post {
	r := make(map[string][]content.Post)
	for _, p := range posts {
		if p.Uncategorized() {
			r[Uncategorized] = append(r[Uncategorized], p)
			continue
		}
		for _, t := range p.Tags {
			r[t] = append(r[t], p)
		}
	}
	return r
}

// Bucket is one tag and its posts.
type Bucket struct {
	Key   string         // Tag as a path segment, used in routes and lookups
	Name  string         // Tag as first written, used for display
	Posts []content.Post // In index order
}

// TagIndex groups posts by tag. Tags that map to the same path segment,
// such as "Go" and "go", share a bucket.
type TagIndex struct {
	buckets map[string]*Bucket
	order   []string // keys in first-seen order
}

// NewTagIndex groups posts like GroupByTag but keys buckets by
// paths.Segment, so every bucket has its own route.
func NewTagIndex(posts []content.Post) *TagIndex {
	ti := &TagIndex{buckets: make(map[string]*Bucket)}
	for _, p := range posts {
		if p.Uncategorized() {
			ti.add(Uncategorized, p)
			continue
		}
		added := make(map[string]bool, len(p.Tags))
		for _, t := range p.Tags {
			k := paths.Segment(t)
			if added[k] {
				continue
			}
			added[k] = true
			ti.add(t, p)
		}
	}
	return ti
}

func (ti *TagIndex) add(tag string, p content.Post) {
	k := paths.Segment(tag)
	b, ok := ti.buckets[k]
	if !ok {
		b = &Bucket{Key: k, Name: tag}
		ti.buckets[k] = b
		ti.order = append(ti.order, k)
	}
	b.Posts = append(b.Posts, p)
}

// Lookup returns the bucket for tag, ignoring case. An unknown tag yields
// an empty bucket and false.
func (ti *TagIndex) Lookup(tag string) (Bucket, bool) {
	k := paths.Segment(tag)
	if b, ok := ti.buckets[k]; ok {
		return *b, true
	}
	return Bucket{Key: k, Name: tag}, false
}

// Buckets returns every bucket sorted by key.
func (ti *TagIndex) Buckets() []Bucket {
	r := make([]Bucket, 0, len(ti.buckets))
	for _, b := range ti.buckets {
		r = append(r, *b)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// Names returns the display names of real tags in first-seen order. The
// Uncategorized bucket is left out.
func (ti *TagIndex) Names() []string {
	var r []string
	for _, k := range ti.order {
		if k == Uncategorized {
			continue
		}
		r = append(r, ti.buckets[k].Name)
	}
	return r
}

// Len returns the number of buckets.
func (ti *TagIndex) Len() int {
	return len(ti.buckets)
}

package content

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

const yamlPost = `---
title: "Hello YAML"
date: "2024-06-01T09:00:00.000Z"
excerpt: "First words."
coverImage: "/assets/blog/hello/cover.png"
author:
  name: Siôn
  picture: "/assets/blog/authors/sion.png"
ogImage:
  url: "/assets/blog/hello/cover.png"
tags:
  - Go
  - " testing "
  - ""
---

# Heading

Body text.
`

const tomlPost = `+++
title = "Hello YAML"
date = "2024-06-01T09:00:00.000Z"
excerpt = "First words."
coverImage = "/assets/blog/hello/cover.png"
tags = ["Go", " testing ", ""]

[author]
name = "Siôn"
picture = "/assets/blog/authors/sion.png"

[ogImage]
url = "/assets/blog/hello/cover.png"
+++

# Heading

Body text.
`

func TestParseFrontMatterFormatsAgree(t *testing.T) {
	yfm, ybody, err := ParseFrontMatter([]byte(yamlPost))
	if err != nil {
		t.Fatal(err)
	}
	tfm, tbody, err := ParseFrontMatter([]byte(tomlPost))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(yfm, tfm) {
		t.Errorf("YAML and TOML front matter differ:\n%#v\n%#v", yfm, tfm)
	}
	if string(ybody) != string(tbody) {
		t.Errorf("Bodies differ: %q vs %q", ybody, tbody)
	}
	if !strings.HasPrefix(string(ybody), "# Heading") {
		t.Errorf("Unexpected body %q", ybody)
	}
	if !reflect.DeepEqual(yfm.Tags, []string{"Go", "testing"}) {
		t.Errorf("Unexpected tags %#v", yfm.Tags)
	}
	if yfm.Author.Name != "Siôn" || yfm.OGImage.URL != "/assets/blog/hello/cover.png" {
		t.Errorf("Nested fields not decoded: %#v", yfm)
	}
}

func TestParseFrontMatterNativeDates(t *testing.T) {
	var tests = []struct {
		doc, expect string
	}{
		{"+++\ntitle = \"x\"\ndate = 2024-01-01\n+++\nbody", "2024-01-01"},
		{"---\ntitle: x\ndate: 2024-01-01\n---\nbody", "2024-01-01"},
		{"---\ntitle: x\ndate: \"2024-01-01\"\n---\nbody", "2024-01-01"},
	}
	for _, tt := range tests {
		fm, _, err := ParseFrontMatter([]byte(tt.doc))
		if err != nil {
			t.Errorf("%q: %v", tt.doc, err)
			continue
		}
		if fm.Date != tt.expect {
			t.Errorf("Expected date %q but got %q", tt.expect, fm.Date)
		}
	}
}

func TestParseFrontMatterMissing(t *testing.T) {
	for _, doc := range []string{"# Just markdown\n", "title: nope\n", "text\n---\ntitle: late\n---\n"} {
		_, _, err := ParseFrontMatter([]byte(doc))
		if !errors.Is(err, ErrNoFrontMatter) {
			t.Errorf("%q: expected ErrNoFrontMatter but got %v", doc, err)
		}
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"_posts/hello.md":     {Data: []byte(yamlPost)},
		"_posts/second.md":    {Data: []byte("---\ntitle: Second\ndate: 2024-01-01\n---\nx")},
		"_posts/notes.txt":    {Data: []byte("ignored")},
		"_posts/.draft.md":    {Data: []byte("ignored")},
		"_posts/sub/inner.md": {Data: []byte("ignored")},
	}
	srcs, err := Loader{FS: fsys, Dir: "_posts"}.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 2 {
		t.Fatalf("Expected 2 sources but got %d", len(srcs))
	}
	if srcs[0].Slug != "hello" || srcs[1].Slug != "second" {
		t.Errorf("Unexpected slugs %q, %q", srcs[0].Slug, srcs[1].Slug)
	}
	if srcs[0].Path != "_posts/hello.md" {
		t.Errorf("Unexpected path %q", srcs[0].Path)
	}
	expect := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !srcs[0].Published.Equal(expect) {
		t.Errorf("Expected %s but got %s", expect, srcs[0].Published)
	}
	if !srcs[1].Published.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date %s", srcs[1].Published)
	}
}

func TestLoadErrors(t *testing.T) {
	var tests = []struct {
		name   string
		fsys   fstest.MapFS
		dir    string
		target error
		path   string
	}{
		{"missing dir", fstest.MapFS{}, "_posts", fs.ErrNotExist, "_posts"},
		{"no front matter", fstest.MapFS{"p/a.md": {Data: []byte("# hi")}}, "p", ErrNoFrontMatter, "p/a.md"},
		{"no title", fstest.MapFS{"p/a.md": {Data: []byte("---\ndate: 2024-01-01\n---\n")}}, "p", ErrMissingField, "p/a.md"},
		{"no date", fstest.MapFS{"p/a.md": {Data: []byte("---\ntitle: a\n---\n")}}, "p", ErrMissingField, "p/a.md"},
		{"bad date", fstest.MapFS{"p/a.md": {Data: []byte("---\ntitle: a\ndate: someday\n---\n")}}, "p", ErrBadDate, "p/a.md"},
	}
	for _, tt := range tests {
		_, err := Loader{FS: tt.fsys, Dir: tt.dir}.Load()
		if !errors.Is(err, tt.target) {
			t.Errorf("%s: expected %v but got %v", tt.name, tt.target, err)
			continue
		}
		var le *LoadError
		if !errors.As(err, &le) {
			t.Errorf("%s: expected *LoadError but got %T", tt.name, err)
			continue
		}
		if le.Path != tt.path {
			t.Errorf("%s: expected path %q but got %q", tt.name, tt.path, le.Path)
		}
	}
}

type prefixResolver string

func (p prefixResolver) Asset(s string) string {
	return string(p) + s
}

func TestNewPost(t *testing.T) {
	srcs, err := Loader{FS: fstest.MapFS{"hello.md": {Data: []byte(yamlPost)}}}.Load()
	if err != nil {
		t.Fatal(err)
	}
	src := srcs[0]
	p := NewPost(src, prefixResolver("/base"))
	if p.CoverImage != "/base/assets/blog/hello/cover.png" {
		t.Errorf("Cover not resolved: %q", p.CoverImage)
	}
	if p.Author.Picture != "/base/assets/blog/authors/sion.png" {
		t.Errorf("Author picture not resolved: %q", p.Author.Picture)
	}
	if p.OGImage.URL != "/base/assets/blog/hello/cover.png" {
		t.Errorf("OG image not resolved: %q", p.OGImage.URL)
	}
	if p.ThumbnailImage != "" {
		t.Errorf("Absent thumbnail should stay empty, got %q", p.ThumbnailImage)
	}
	if p.Thumbnail() != p.CoverImage {
		t.Errorf("Thumbnail should fall back to cover, got %q", p.Thumbnail())
	}
	if src.FrontMatter.CoverImage != "/assets/blog/hello/cover.png" {
		t.Errorf("Source was modified: %q", src.FrontMatter.CoverImage)
	}
	p.Tags[0] = "changed"
	if src.FrontMatter.Tags[0] != "Go" {
		t.Error("Post shares its tag slice with the source")
	}
	if p.Uncategorized() {
		t.Error("Post with tags reported as uncategorized")
	}
}

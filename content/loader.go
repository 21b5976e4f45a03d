/*
Package content reads blog posts from a directory of Markdown files.

Each post lives in its own file named "<slug>.md" and starts with a front
matter block, either YAML delimited by "---" or TOML delimited by "+++":

	---
	title: "Hello"
	date: "2024-06-01T09:00:00.000Z"
	excerpt: "First words."
	coverImage: "/assets/blog/hello/cover.png"
	author:
	  name: Siôn
	  picture: "/assets/blog/authors/sion.png"
	ogImage:
	  url: "/assets/blog/hello/cover.png"
	tags:
	  - go
	---
	Body in Markdown.

A title and a parseable date are required; every other key is optional.
*/
package content

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Source is a post file that has been read and parsed but not yet turned
// into a Post.
type Source struct {
	Slug        string      // File name without the .md extension
	Path        string      // Path of the file within the loader's FS
	FrontMatter FrontMatter // Parsed front matter
	Published   time.Time   // Parsed FrontMatter.Date
	Body        string      // Markdown after the front matter
}

// Loader reads every post in Dir of FS.
type Loader struct {
	FS  fs.FS
	Dir string
}

// Load reads and parses all Markdown files in the loader's directory, in
// directory order. Hidden files, subdirectories and other extensions are
// skipped. The first failure is returned as a *LoadError.
func (l Loader) Load() ([]Source, error) {
	dir := l.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(l.FS, dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	}
	var r []Source
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || path.Ext(name) != ".md" {
			continue
		}
		src, err := ReadSource(l.FS, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		r = append(r, src)
	}
	return r, nil
}

// ReadSource reads and parses a single post file.
func ReadSource(fsys fs.FS, name string) (Source, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Source{}, &LoadError{Path: name, Err: err}
	}
	fm, body, err := ParseFrontMatter(b)
	if err != nil {
		return Source{}, &LoadError{Path: name, Err: err}
	}
	if fm.Title == "" {
		return Source{}, &LoadError{Path: name, Err: fmt.Errorf("%w: title", ErrMissingField)}
	}
	if fm.Date == "" {
		return Source{}, &LoadError{Path: name, Err: fmt.Errorf("%w: date", ErrMissingField)}
	}
	published, err := ParseDate(fm.Date)
	if err != nil {
		return Source{}, &LoadError{Path: name, Err: err}
	}
	base := path.Base(name)
	return Source{
		Slug:        strings.TrimSuffix(base, path.Ext(base)),
		Path:        name,
		FrontMatter: fm,
		Published:   published,
		Body:        string(body),
	}, nil
}

// ParseDate parses a front matter date. Dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrBadDate, s, err)
	}
	return t, nil
}

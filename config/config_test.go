package config

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(fstest.MapFS{}, DefaultFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != DefaultTitle || cfg.Posts != DefaultPosts || cfg.Output != DefaultOutput {
		t.Errorf("Defaults not applied: %#v", cfg)
	}
	if cfg.BasePath(true) != "/sioncodes" {
		t.Errorf("Expected production base %q but got %q", "/sioncodes", cfg.BasePath(true))
	}
	if cfg.BasePath(false) != "" {
		t.Errorf("Expected empty development base but got %q", cfg.BasePath(false))
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"blog.toml": {Data: []byte(`
title = "Test Blog"
url = "https://example.com"
basepath = "/sioncodes/blog"
devbasepath = "/preview"
markdown = "goldmark"
latest = 3
expires = "10m"
staticexpires = "1h"

[headers]
X-Frame-Options = "DENY"
`)},
	}
	cfg, err := Load(fsys, "blog.toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Test Blog" || cfg.URL != "https://example.com" {
		t.Errorf("Unexpected title/url: %#v", cfg)
	}
	if cfg.BasePath(true) != "/sioncodes/blog" || cfg.BasePath(false) != "/preview" {
		t.Errorf("Unexpected base paths %q %q", cfg.BasePath(true), cfg.BasePath(false))
	}
	if cfg.Markdown != "goldmark" || cfg.Latest != 3 || cfg.Menu != DefaultMenu {
		t.Errorf("Unexpected settings: %#v", cfg)
	}
	if time.Duration(cfg.Expires) != 10*time.Minute || time.Duration(cfg.StaticExpires) != time.Hour {
		t.Errorf("Unexpected durations %s %s", cfg.Expires, cfg.StaticExpires)
	}
	if cfg.Headers["X-Frame-Options"] != "DENY" {
		t.Errorf("Unexpected headers %v", cfg.Headers)
	}
}

func TestLoadInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"blog.toml": {Data: []byte(`expires = "forever"`)},
		"bad.toml":  {Data: []byte(`title = `)},
	}
	for _, name := range []string{"blog.toml", "bad.toml"} {
		if _, err := Load(fsys, name); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestDuration(t *testing.T) {
	var tests = map[string]time.Duration{
		"10m":   10 * time.Minute,
		"1h30m": 90 * time.Minute,
		"60":    time.Minute,
		" 5s ":  5 * time.Second,
		"":      0,
	}
	for in, expect := range tests {
		d := Duration(time.Hour)
		if err := d.UnmarshalText([]byte(in)); err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if time.Duration(d) != expect {
			t.Errorf("%q: expected %v but got %v", in, expect, time.Duration(d))
		}
	}
	d := Duration(time.Hour)
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("Expected an error for soon")
	}
	if d != Duration(time.Hour) {
		t.Errorf("Failed parse changed the value to %v", d)
	}
	b, _ := Duration(90 * time.Second).MarshalText()
	if string(b) != "1m30s" {
		t.Errorf("Unexpected text %q", b)
	}
}

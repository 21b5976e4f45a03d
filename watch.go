package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sioncodes/blog/config"
	"github.com/sioncodes/blog/render"
)

// settle is how long the sources must be quiet before a rebuild starts.
const settle = 300 * time.Millisecond

// watcher rebuilds the site when a source file changes. Rebuilds run one at
// a time on the goroutine calling run.
type watcher struct {
	*fsnotify.Watcher
	site *site
}

// sourceDirs lists the folders whose contents feed a build.
func sourceDirs(cfg *config.Config) []string {
	return []string{".", cfg.Posts, cfg.Public, render.TemplateDir}
}

// relevant reports whether a change to the named file affects the build.
// Only the config and the about page are watched at the root.
func relevant(name string, cfg *config.Config, configFile string) bool {
	name = filepath.ToSlash(filepath.Clean(name))
	if strings.HasPrefix(path.Base(name), ".") {
		return false
	}
	if path.Dir(name) == "." {
		return name == configFile || name == cfg.About
	}
	return true
}

func newWatcher(s *site, cfg *config.Config) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{Watcher: fw, site: s}
	for _, dir := range sourceDirs(cfg) {
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree watches dir and every folder below it, except hidden ones and the
// root, which is watched on its own. A missing dir is ignored.
func (w *watcher) addTree(dir string) error {
	if dir == "." {
		return w.Add(dir)
	}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// restart sets t to fire after d, discarding a pending expiry that was
// never received.
func restart(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// run waits for changes and rebuilds once they settle.
func (w *watcher) run() {
	cfg, err := w.site.load()
	if err != nil {
		log.Printf("watch: %s", err)
		return
	}
	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !relevant(ev.Name, cfg, w.site.configFile) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Printf("watch: %s", err)
					}
				}
			}
			log.Printf("Changed: %s", ev.Name)
			restart(timer, settle)
		case <-timer.C:
			newCfg, res, err := w.site.build()
			if err != nil {
				log.Printf("Rebuild failed, keeping the previous output: %s", err)
				continue
			}
			cfg = newCfg
			log.Printf("Rebuilt %d pages", len(res.Pages))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %s", err)
		}
	}
}
